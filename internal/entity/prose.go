// Curio - Cross-Media Knowledge Graph Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curio

package entity

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jdkato/prose/v2"

	"github.com/tomtom215/curio/internal/metrics"
)

// ProseExtractor recognises entities with the prose averaged-perceptron NER
// model. The model is loaded on first use; ModelPath selects a model trained
// with prose and saved to disk instead of the bundled one.
type ProseExtractor struct {
	ModelPath string

	once  sync.Once
	model *prose.Model
	err   error
}

// NewProseExtractor returns an extractor using the bundled model, or the model
// stored under modelPath when it is not empty.
func NewProseExtractor(modelPath string) *ProseExtractor {
	return &ProseExtractor{ModelPath: modelPath}
}

// Load forces the model to be loaded. Extract calls it implicitly.
func (p *ProseExtractor) Load() error {
	p.once.Do(func() {
		if p.ModelPath != "" {
			p.model = prose.ModelFromDisk(p.ModelPath)
			if p.model == nil {
				p.err = fmt.Errorf("load prose model from %s", p.ModelPath)
			}
			return
		}

		// The bundled model is attached to the first document built without one.
		doc, err := prose.NewDocument("Curio", prose.WithSegmentation(false))
		if err != nil {
			p.err = fmt.Errorf("load bundled prose model: %w", err)
			return
		}
		p.model = doc.Model
	})
	return p.err
}

// Extract implements Extractor.
func (p *ProseExtractor) Extract(ctx context.Context, title string) (Set, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return Set{}, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := p.Load(); err != nil {
		return nil, err
	}

	start := time.Now()
	doc, err := prose.NewDocument(title,
		prose.UsingModel(p.model),
		prose.WithSegmentation(false),
	)
	metrics.RecordEntityExtraction(time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("extract entities from %q: %w", title, err)
	}

	ents := doc.Entities()
	set := make(Set, len(ents))
	for _, e := range ents {
		set[e.Text] = e.Label
	}
	return set, nil
}
