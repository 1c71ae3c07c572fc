package service

import (
	"github.com/okian/rosterlab/internal/domain/extstats"
	"github.com/okian/rosterlab/pkg/logger"
)

// Option applies a configuration option to the Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(l logger.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithStatsPaths sets the vs-LHP and vs-RHP statistics files.
func WithStatsPaths(lhp, rhp string) Option {
	return func(p *Pipeline) {
		p.lhpPath = lhp
		p.rhpPath = rhp
	}
}

// WithSchema sets the statistics key columns and drop list.
func WithSchema(s extstats.Schema) Option {
	return func(p *Pipeline) {
		if s.NameColumn != "" && s.IDColumn != "" {
			p.schema = s
		}
	}
}

// WithOutputDir writes hitters.csv and pitchers.csv under dir after a run.
func WithOutputDir(dir string) Option {
	return func(p *Pipeline) {
		p.outputDir = dir
	}
}
