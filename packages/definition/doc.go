// Package definition describes pending variable definitions.
//
// A definition names a variable, the response attribute to read it from and a
// JSONPath expression selecting the value. Definitions are queued in the store
// under StoreKey as a serialized JSON array and consumed by the response hook:
//
//	[{"variableName": "ticket", "attribute": "body", "path": "$.ticketId"}]
//
// Values extracted for a definition are stored under VariableKey(name).
package definition
