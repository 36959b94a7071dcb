// kb-validate checks a knowledge base document the way the assistant will
// at startup: it either prints the entry count or the reason the load would
// be refused. Meant for KB editors before they ship a change.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/hellofriends/rights-engine/pkg/rights/kb"
)

func main() {
	path := flag.String("kb", "kb/rights_sg.yaml", "Path to knowledge base YAML")
	flag.Parse()

	base, err := kb.Load(*path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "INVALID: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("OK: %d entries, %d emergency contacts, %d disclaimers\n",
		base.Len(), len(base.EmergencyContacts()), len(base.Disclaimers()))
	for _, e := range base.Entries() {
		fmt.Printf("  - %-20s %-14s keywords=%d steps=%d contacts=%d translations=%d\n",
			e.ID, e.Category, len(e.Keywords), len(e.Steps), len(e.Contacts), len(e.Translations))
	}
}
