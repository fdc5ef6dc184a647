// Package config builds loggers and backends from YAML documents.
//
// A document describes one backend and the logger in front of it:
//
//	backend:
//	  kind: file            # console | file | slog | zap | logrus | memory
//	  level: info
//	  output: /var/log/api.log
//	  rotation:
//	    max_size_mb: 100
//	    max_backups: 3
//	    max_age_days: 28
//	    compress: true
//	  filter: 'level == "error" || meta.retries > 2'
//	logger:
//	  name: api
//	  max_sites: 4096
//
// [Load] or [Parse] decode and validate a document; [Config.Build]
// constructs the backend it describes, and [Config.BuildLogger] wraps
// it in a ready logger. Documents are strict: unknown fields are
// parse errors.
package config
