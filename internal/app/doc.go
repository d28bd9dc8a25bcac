// Package app is the composition root of ManagerX. It opens the local
// stores, wires the services to them and owns their lifecycle.
package app
