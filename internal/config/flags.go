package config

import (
	"flag"
	"os"
)

const defaultSeedPath = "./resources/sample_data.json"

// parses CLI flags for the seed command
func ParseSeedFlags() Flags {
	return parseSeedFlags(os.Args[1:])
}

func parseSeedFlags(args []string) Flags {
	fs := flag.NewFlagSet("seed", flag.ExitOnError)
	path := fs.String("path", defaultSeedPath, "path to sample records JSON file")
	clearFlag := fs.Bool("clear", false, "delete existing records of each seeded kind first")
	fs.Parse(args) //nolint:errcheck,gosec // G104: ExitOnError flag set handles errors

	return Flags{Path: *path, Clear: *clearFlag}
}

// returns default flags for seeding
func DefaultSeedFlags() Flags {
	return Flags{Path: defaultSeedPath, Clear: false}
}
