// Package surge contains the domain model for the Surge proxy and the three
// backend clients used to observe and control it: the key-authenticated HTTP
// API, the surge-cli executable, and raw OS process control. The Client type
// unifies them behind one API with automatic HTTP-to-CLI fallback and builds
// the per-refresh Snapshot consumed by the dashboard.
package surge
