package util

import (
	"gopkg.in/ini.v1"
)

// Ini reads the keys of the default section of an ini file.
// A missing file is not an error if optional is true.
func Ini(filename string, optional bool) (map[string]string, error) {
	var opts = ini.LoadOptions{
		Loose: optional, // ignore missing file
	}
	cfg, err := ini.LoadSources(opts, filename)
	if err != nil {
		return nil, err
	}
	return cfg.Section("").KeysHash(), nil
}
