package main

import (
	"context"
	"slices"
)

type stage interface {
	Start(ctx context.Context) error
	Close()
}

// pipeline starts its stages in order and closes them in reverse order.
type pipeline struct {
	stages  []stage
	started []stage
}

// onClose is a stage with nothing to start that runs f on Close.
type onClose func()

func (onClose) Start(context.Context) error { return nil }

func (f onClose) Close() { f() }

func (p *pipeline) add(s stage) {
	p.stages = append(p.stages, s)
}

func (p *pipeline) Start(ctx context.Context) error {
	for _, s := range p.stages {
		if err := s.Start(ctx); err != nil {
			p.Close()
			return err
		}
		p.started = append(p.started, s)
	}
	return nil
}

func (p *pipeline) Close() {
	for _, s := range slices.Backward(p.started) {
		s.Close()
	}
	p.started = nil
}

// monitor builds its pipeline on Start. The explorers, the broker and the
// services only exist while the start command runs.
type monitor struct {
	build   func(ctx context.Context) (*pipeline, error)
	running *pipeline
}

func (m *monitor) Start(ctx context.Context) error {
	p, err := m.build(ctx)
	if err != nil {
		return err
	}

	if err := p.Start(ctx); err != nil {
		return err
	}
	m.running = p
	return nil
}

func (m *monitor) Close() {
	if m.running != nil {
		m.running.Close()
		m.running = nil
	}
}
