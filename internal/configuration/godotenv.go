package configuration

import (
	"fmt"

	"github.com/joho/godotenv"
)

// GodotenvProvider reads makethumbs configuration files through the godotenv
// parser. Quoting, comments and "export" prefixes follow its dotenv rules.
type GodotenvProvider struct{}

// Read merges the KEY=VALUE pairs of the given files into one map. Where a
// key repeats across files, the last file holding it wins.
func (*GodotenvProvider) Read(filenames ...string) (map[string]string, error) {
	envMap, err := godotenv.Read(filenames...)
	if err != nil {
		return nil, fmt.Errorf("(config-read) %w", err)
	}

	return envMap, nil
}
