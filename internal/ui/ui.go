package ui

import "github.com/felixgeelhaar/apexmind/internal/trait"

type UI interface {
	UpdateStatus(status string)
	UpdateScores(scores trait.Vector)
	Log(msg string)
}

type SilentUI struct{}

func (s SilentUI) UpdateStatus(status string)      {}
func (s SilentUI) UpdateScores(scores trait.Vector) {}
func (s SilentUI) Log(msg string)                  {}
