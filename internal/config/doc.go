// Package config loads Sahayak's own configuration.
//
// The file lives at ~/.config/sahayak/config.toml and every field is
// optional:
//
//	api_url      = "http://localhost:5000/api"   # backend base URL
//	data_dir     = "~/.local/share/sahayak"      # storage + log location
//	poll_seconds = 15                            # connectivity probe cadence
//	debug        = false                         # verbose logging
//
// A missing file is not an error; defaults apply. A present but malformed
// file is an error, surfaced to the caller rather than silently ignored, so
// a typo never silently points the client at the wrong backend.
package config
