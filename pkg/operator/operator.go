// Package operator runs messages through Enigma machines the way a cipher
// clerk would: every message is set up from the day's key sheet, so sender
// and receiver always start from the same rotor positions.
//
// The operator adds what the pure cipher package leaves out: validation of
// the key, message identifiers, structured logs and Prometheus metrics.
package operator

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/dd0wney/cluso-enigma/pkg/enigma"
	"github.com/dd0wney/cluso-enigma/pkg/logging"
	"github.com/dd0wney/cluso-enigma/pkg/metrics"
	"github.com/dd0wney/cluso-enigma/pkg/validation"
)

const (
	OpEncrypt = "encrypt"
	OpDecrypt = "decrypt"
)

// DefaultWorkers bounds EncryptBatch when WithWorkers is not given.
const DefaultWorkers = 4

// Result describes one processed message.
type Result struct {
	MessageID   string `json:"message_id"`
	Operation   string `json:"operation"`
	Text        string `json:"text"`
	Enciphered  int    `json:"enciphered"`
	Passthrough int    `json:"passthrough"`
	// Positions are the rotor windows after the message, fastest first.
	Positions string `json:"positions"`
}

// Operator enciphers messages under one key.
type Operator struct {
	settings enigma.Settings
	logger   logging.Logger
	metrics  *metrics.Registry
	workers  int
}

// Option configures an Operator.
type Option func(*Operator)

func WithLogger(l logging.Logger) Option {
	return func(o *Operator) { o.logger = l }
}

func WithMetrics(r *metrics.Registry) Option {
	return func(o *Operator) { o.metrics = r }
}

// WithWorkers bounds how many messages EncryptBatch enciphers at once.
func WithWorkers(n int) Option {
	return func(o *Operator) { o.workers = n }
}

// New checks the key and returns an operator for it.
func New(settings enigma.Settings, opts ...Option) (*Operator, error) {
	o := &Operator{
		settings: settings,
		logger:   logging.NewNopLogger(),
		metrics:  metrics.DefaultRegistry(),
		workers:  DefaultWorkers,
	}
	for _, opt := range opts {
		opt(o)
	}
	o.workers = validation.DefaultOr(max(o.workers, 0), DefaultWorkers)

	o.logger = o.logger.With(
		logging.Component("operator"),
		logging.Rotors(rotorModels(settings)),
		logging.Reflector(settings.Reflector),
	)

	err := validation.ValidateSettings(&o.settings)
	if err == nil {
		_, err = enigma.New(o.settings)
	}
	o.metrics.RecordMachineBuilt(err)
	if err != nil {
		o.logger.Error("key rejected", logging.Error(err))
		return nil, fmt.Errorf("operator key: %w", err)
	}

	o.logger.Debug("key accepted", logging.Count(len(settings.Rotors)))
	return o, nil
}

// Settings returns the operator's key.
func (o *Operator) Settings() enigma.Settings {
	return o.settings
}

// Encrypt enciphers text from the key's starting positions.
func (o *Operator) Encrypt(ctx context.Context, text string) (Result, error) {
	return o.process(ctx, OpEncrypt, text)
}

// Decrypt deciphers text from the key's starting positions.
func (o *Operator) Decrypt(ctx context.Context, text string) (Result, error) {
	return o.process(ctx, OpDecrypt, text)
}

// EncryptBatch enciphers each message independently, in parallel, each from
// the key's starting positions. Results keep the input order. The first
// cancellation stops messages that have not started yet.
func (o *Operator) EncryptBatch(ctx context.Context, texts []string) ([]Result, error) {
	o.metrics.RecordBatch(len(texts))

	results := make([]Result, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)

	for i, text := range texts {
		i, text := i, text
		g.Go(func() error {
			res, err := o.process(gctx, OpEncrypt, text)
			if err != nil {
				return fmt.Errorf("message %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (o *Operator) process(ctx context.Context, op, text string) (Result, error) {
	id := uuid.NewString()
	log := o.logger.With(logging.Operation(op), logging.MessageID(id))

	if err := ctx.Err(); err != nil {
		o.metrics.RecordMessage(op, "cancelled", 0, 0, 0)
		log.Warn("message cancelled", logging.Error(err))
		return Result{}, err
	}

	timer := logging.StartTimer(log, "message processed")

	// Keys are validated in New, so building cannot fail here.
	m := enigma.MustNew(o.settings)
	out := m.Encrypt(text)

	res := Result{
		MessageID:   id,
		Operation:   op,
		Text:        out,
		Enciphered:  m.Processed(),
		Passthrough: utf8.RuneCountInString(text) - m.Processed(),
		Positions:   m.Positions(),
	}

	o.metrics.RecordMessage(op, "success", timer.Elapsed(), res.Enciphered, res.Passthrough)
	timer.End(
		logging.Count(res.Enciphered),
		logging.Int("passthrough", res.Passthrough),
		logging.Positions(res.Positions),
	)
	return res, nil
}

func rotorModels(s enigma.Settings) []string {
	models := make([]string, len(s.Rotors))
	for i, r := range s.Rotors {
		models[i] = r.Model
	}
	return models
}
