// Package config provides configuration loading for tabclean.
//
// # Key Features
//
// - Config: one structure with Logging, Pipeline, Metrics and Tracing sections
// - Defaults from Default, checked by Validate
// - YAML files with ${VAR_NAME} substitution
// - Environment overrides with the TABCLEAN_ prefix
//
// # Usage
//
//	cfg, err := config.Load("tabclean.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//
// An empty path loads defaults and environment only:
//
//	cfg, err := config.Load("")
//
// ## Environment Overrides
//
// Nested keys are joined with underscores:
//
//	TABCLEAN_PIPELINE_WORKERS=8
//	TABCLEAN_LOGGING_LEVEL=debug
//	TABCLEAN_TRACING_ENABLED=true
//
// ## Environment Variable Substitution
//
// Values in the YAML file may reference the environment:
//
//	tracing:
//	  service_name: ${SERVICE_NAME}
package config
