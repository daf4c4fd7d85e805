package cli

import (
	"go.uber.org/zap"

	"connected-collections/connected"
	"connected-collections/internal/declare"
	"connected-collections/internal/diagnostic"
)

// loaded is one declaration file applied to a fresh universe.
type loaded struct {
	path   string
	result *declare.Result
	diags  *diagnostic.Diagnostics
}

func (a *app) load(path string) (*loaded, error) {
	doc, err := declare.LoadFile(path)
	if err != nil {
		return nil, err
	}

	u := connected.NewUniverse(connected.WithLogger(a.log.With(zap.String("file", path))))
	res, diags := declare.Apply(doc, u)

	a.log.Info("declarations applied",
		zap.String("file", path),
		zap.Int("types", len(doc.Types)),
		zap.Int("errors", len(diags.Errors)),
		zap.Int("warnings", len(diags.Warnings)))

	return &loaded{path: path, result: res, diags: diags}, nil
}

func (l *loaded) types() []*connected.Type {
	if l.result == nil {
		return nil
	}

	return l.result.Types
}
