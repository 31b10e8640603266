package config

// applyOperationDefaults applies global defaults to pipeline-specific configuration
func (c *Config) applyOperationDefaults(opCfg *OperationAIConfig) {
	if opCfg.Provider == "" {
		opCfg.Provider = c.AI.Provider
	}
	if opCfg.Model == "" {
		opCfg.Model = c.AI.Model
	}
	if opCfg.Timeout == nil {
		opCfg.Timeout = &c.AI.Timeout
	}
	if opCfg.APIKey == "" {
		opCfg.APIKey = c.AI.APIKey
	}
	if opCfg.MaxRetries == nil {
		opCfg.MaxRetries = &c.AI.MaxRetries
	}
	if opCfg.Temperature == nil {
		opCfg.Temperature = &c.AI.Temperature
	}
	// UseSystemPrompts: apply global default only if not explicitly set
	if opCfg.UseSystemPrompts == nil {
		opCfg.UseSystemPrompts = &c.AI.UseSystemPrompts
	}
}

// mergePromptMaps returns a copy of the pipeline map with global entries
// filled in for operations the pipeline map does not override.
func mergePromptMaps(pipeline, global map[string]string) map[string]string {
	if len(pipeline) == 0 && len(global) == 0 {
		return pipeline
	}
	merged := make(map[string]string, len(pipeline)+len(global))
	for op, value := range global {
		merged[op] = value
	}
	for op, value := range pipeline {
		if value != "" {
			merged[op] = value
		}
	}
	return merged
}

// mergePrompts applies global prompt fallbacks to a pipeline prompt config
func mergePrompts(pipeline, global PromptConfig) PromptConfig {
	return PromptConfig{
		System:      mergePromptMaps(pipeline.System, global.System),
		User:        mergePromptMaps(pipeline.User, global.User),
		SystemFiles: mergePromptMaps(pipeline.SystemFiles, global.SystemFiles),
		UserFiles:   mergePromptMaps(pipeline.UserFiles, global.UserFiles),
	}
}

// GetScanConfig returns the AI configuration for the scan pipeline with
// fallback to global config
func (c *Config) GetScanConfig() OperationAIConfig {
	config := c.AI.Scan

	// Apply common defaults
	c.applyOperationDefaults(&config)

	// Apply prompt fallbacks per operation
	config.CustomPrompts = mergePrompts(config.CustomPrompts, c.AI.CustomPrompts)

	return config
}

// GetGenerateConfig returns the AI configuration for the generate
// pipeline with fallback to global config
func (c *Config) GetGenerateConfig() OperationAIConfig {
	config := c.AI.Generate

	// Apply common defaults
	c.applyOperationDefaults(&config)

	// Apply prompt fallbacks per operation
	config.CustomPrompts = mergePrompts(config.CustomPrompts, c.AI.CustomPrompts)

	return config
}
