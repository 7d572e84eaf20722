// File: mode.go
// Role: well-known mode ids a protocol registers itself under.
package frame

// ModeJanus is the mode id the Janus-style dependency-graph commit
// protocol registers itself under; "brq" and "baroque" are accepted
// aliases for compatibility with the protocol family's other names.
const ModeJanus = "janus"

// ModeJanusAliases lists the aliases the janus package registers
// alongside ModeJanus.
var ModeJanusAliases = []string{"brq", "baroque"}
