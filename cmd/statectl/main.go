// cmd/statectl - export/import the tracker state blob for backup and
// migration between installations.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"tracker/database"
	"tracker/models"
)

func main() {
	exportPath := flag.String("export", "", "write the current state blob to this file ('-' for stdout)")
	importPath := flag.String("import", "", "replace the current state blob with this file's contents")
	flag.Parse()

	if (*exportPath == "") == (*importPath == "") {
		fmt.Fprintln(os.Stderr, "usage: statectl -export FILE | -import FILE")
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	database.InitDB()
	defer database.CloseDB()

	store := database.NewStateStore(database.GetDB())

	if *exportPath != "" {
		state, err := store.Load()
		if err != nil {
			log.Fatal("Failed to load state:", err)
		}
		raw, err := state.Encode()
		if err != nil {
			log.Fatal("Failed to encode state:", err)
		}

		if *exportPath == "-" {
			fmt.Println(string(raw))
			return
		}
		if err := os.WriteFile(*exportPath, raw, 0644); err != nil {
			log.Fatal("Failed to write export file:", err)
		}
		fmt.Printf("Exported state to %s (%d bytes)\n", *exportPath, len(raw))
		return
	}

	raw, err := os.ReadFile(*importPath)
	if err != nil {
		log.Fatal("Failed to read import file:", err)
	}

	// Keep a copy of what is being overwritten.
	current, err := store.Load()
	if err != nil {
		log.Fatal("Failed to load current state:", err)
	}
	if _, err := store.Snapshot(current, "import"); err != nil {
		log.Fatal("Failed to snapshot current state:", err)
	}

	// DecodeState merges onto defaults, so a partial or foreign blob still
	// lands as a usable state.
	state := models.DecodeState(raw)
	if err := store.Save(state); err != nil {
		log.Fatal("Failed to save state:", err)
	}
	fmt.Printf("Imported state for profile %q (%d days tracked)\n",
		state.ActiveProfile, len(state.Profiles[state.ActiveProfile].Days))
}
