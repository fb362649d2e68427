package session

import (
	"fmt"
	"strconv"
	"strings"
)

// Choice is one entry of an enumerated setting's picklist.
type Choice struct {
	Display string
	Value   string
}

// Setting describes one mutable session option declaratively: how to
// validate raw input, turn it into a typed value, format the typed value
// for display, and bind it to the flags record. Callers must validate
// before transforming; Transform on input that failed Validate is
// undefined. Format is total over the typed domain.
type Setting struct {
	Key       string
	Label     string
	Choices   []Choice
	ErrMsg    string
	Validate  func(raw string) bool
	Transform func(raw string) interface{}
	Format    func(value interface{}) string
	Apply     func(flags *SessionFlags, value interface{})
	Current   func(flags *SessionFlags) interface{}
}

// SettingKeys lists the schema in menu order.
var SettingKeys = []string{"type", "per_page", "tracks_type", "tracks_output", "verbose"}

// Schema is the settings lookup table backing both the quick-set path
// and the interactive settings menu.
var Schema = map[string]*Setting{
	"type": {
		Key:    "type",
		Label:  "Search type filter",
		ErrMsg: "must be one of artist, release, master, label, or none",
		Choices: []Choice{
			{Display: "No filter", Value: "none"},
			{Display: "Artist", Value: TypeArtist},
			{Display: "Release", Value: TypeRelease},
			{Display: "Master", Value: TypeMaster},
			{Display: "Label", Value: TypeLabel},
		},
		Validate: func(raw string) bool {
			switch strings.ToLower(raw) {
			case "none", "all", "", TypeArtist, TypeRelease, TypeMaster, TypeLabel:
				return true
			}
			return false
		},
		Transform: func(raw string) interface{} {
			switch v := strings.ToLower(raw); v {
			case "none", "all", "":
				return TypeUnset
			default:
				return v
			}
		},
		Format: func(value interface{}) string {
			if s, _ := value.(string); s != "" {
				return s
			}
			return "none"
		},
		Apply:   func(flags *SessionFlags, value interface{}) { flags.SearchType = value.(string) },
		Current: func(flags *SessionFlags) interface{} { return flags.SearchType },
	},
	"per_page": {
		Key:    "per_page",
		Label:  "Results per page",
		ErrMsg: "must be a positive number",
		Validate: func(raw string) bool {
			n, ok := parseLeadingInt(raw)
			return ok && n > 0
		},
		Transform: func(raw string) interface{} {
			n, _ := parseLeadingInt(raw)
			return n
		},
		Format:  func(value interface{}) string { return strconv.Itoa(value.(int)) },
		Apply:   func(flags *SessionFlags, value interface{}) { flags.PerPage = value.(int) },
		Current: func(flags *SessionFlags) interface{} { return flags.PerPage },
	},
	"tracks_type": {
		Key:    "tracks_type",
		Label:  "Default tracklist source",
		ErrMsg: "must be master or release",
		Choices: []Choice{
			{Display: "Master release", Value: TypeMaster},
			{Display: "Specific release", Value: TypeRelease},
		},
		Validate: func(raw string) bool {
			switch strings.ToLower(raw) {
			case TypeMaster, TypeRelease:
				return true
			}
			return false
		},
		Transform: func(raw string) interface{} { return strings.ToLower(raw) },
		Format:    func(value interface{}) string { return value.(string) },
		Apply:     func(flags *SessionFlags, value interface{}) { flags.TracksSource = value.(string) },
		Current:   func(flags *SessionFlags) interface{} { return flags.TracksSource },
	},
	"tracks_output": {
		Key:    "tracks_output",
		Label:  "Tracklist output format",
		ErrMsg: "must be one of human, csv, pipe, markdown",
		Choices: []Choice{
			{Display: "Human readable", Value: OutputHuman},
			{Display: "CSV", Value: OutputCSV},
			{Display: "Pipe separated", Value: OutputPipe},
			{Display: "Markdown table", Value: OutputMarkdown},
		},
		Validate: func(raw string) bool {
			switch strings.ToLower(raw) {
			case OutputHuman, OutputCSV, OutputPipe, OutputMarkdown:
				return true
			}
			return false
		},
		Transform: func(raw string) interface{} { return strings.ToLower(raw) },
		Format:    func(value interface{}) string { return value.(string) },
		Apply:     func(flags *SessionFlags, value interface{}) { flags.TracksOutput = value.(string) },
		Current:   func(flags *SessionFlags) interface{} { return flags.TracksOutput },
	},
	"verbose": {
		Key:   "verbose",
		Label: "Verbose logging",
		Choices: []Choice{
			{Display: "On", Value: "on"},
			{Display: "Off", Value: "off"},
		},
		// Any input is accepted here: "on" and "true" enable, everything
		// else disables. Other settings reject unrecognized values; this
		// one deliberately does not.
		Validate: func(raw string) bool { return true },
		Transform: func(raw string) interface{} {
			switch strings.ToLower(raw) {
			case "on", "true":
				return true
			}
			return false
		},
		Format: func(value interface{}) string {
			if value.(bool) {
				return "on"
			}
			return "off"
		},
		Apply:   func(flags *SessionFlags, value interface{}) { flags.Verbose = value.(bool) },
		Current: func(flags *SessionFlags) interface{} { return flags.Verbose },
	},
}

// LookupSetting resolves a case-insensitive settings key.
func LookupSetting(key string) (*Setting, bool) {
	s, ok := Schema[strings.ToLower(key)]
	return s, ok
}

// ApplySetting runs the quick-set path: validate, transform, assign.
// On invalid input the flags record is left untouched and the setting's
// error message is returned.
func ApplySetting(flags *SessionFlags, key, raw string) (string, error) {
	setting, ok := LookupSetting(key)
	if !ok {
		return "", fmt.Errorf("unknown setting: %s", key)
	}
	if !setting.Validate(raw) {
		return "", fmt.Errorf("invalid value %q for %s: %s", raw, setting.Key, setting.ErrMsg)
	}
	value := setting.Transform(raw)
	setting.Apply(flags, value)
	return setting.Format(value), nil
}

// parseLeadingInt parses the leading decimal digits of s, so "15abc"
// yields 15. This permissive parse is long-standing behavior that saved
// inputs depend on; do not tighten it to a full-string parse.
func parseLeadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
