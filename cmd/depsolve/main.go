// Command depsolve is a thin CLI front end over the resolution core: it
// loads a repository + requirement-set fixture from disk and runs one of
// the public resolution operations against it, printing the resulting
// plan or unsat core. Repository ingestion from a real package registry
// is out of scope here (internal/repobuild is the library surface for
// that); this front end only exercises the decision-problem core.
package main

import "os"

func main() {
	os.Exit(run())
}
