// Package cli is the terminal front end of ManagerX: a small REPL that
// drives the session, preferences, task and note services.
//
// Rows in the last task or note listing can be addressed by their 1-based
// position or by id:
//
//	managex (demo@managex.com)> tasks
//	  1. [ ] Buy milk            high   due Oct 16 09:00
//	managex (demo@managex.com)> done 1
package cli
