// Package config provides configuration loading for the fate service.
//
// Configuration is read from a YAML file, with defaults applied for any
// unset fields and optional environment variable overrides using the
// FATE_SECTION_FIELD naming convention (for example FATE_LOGGING_LEVEL
// or FATE_LIBRARY_WATCH). Environment variables always win over file
// settings.
//
// A minimal configuration file:
//
//	library:
//	  paths:
//	    - /etc/fate/formulas
//	  watch: true
//	metrics:
//	  enabled: true
//	  listen_address: "0.0.0.0:9090"
//	logging:
//	  level: info
//	  format: json
package config
