package telemetry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/paanihub/paanictl/internal/models"
)

// Sink receives one serialized event per flow transition.
type Sink interface {
	WriteMessage(topic string, msg []byte) error
	Close() error
}

// NewSink builds the sink named by the configuration.
func NewSink(cfg models.TelemetryConfig, log logrus.FieldLogger) (Sink, error) {
	switch cfg.Sink {
	case "", "console":
		return &ConsoleSink{}, nil
	case "file":
		return NewFileSink(cfg.OutputPath, cfg.OutputFolder)
	case "kafka":
		return NewKafkaSink(cfg.KafkaBrokerList)
	case "postgres":
		return NewPostgresSink(cfg.Database)
	case "parquet":
		return NewParquetSink(cfg, log)
	default:
		return nil, fmt.Errorf("unknown telemetry sink: %s", cfg.Sink)
	}
}

// Recorder serializes events and hands them to a sink. A nil Recorder
// is a valid no-op, so every flow can carry one unconditionally.
type Recorder struct {
	sink Sink
	log  logrus.FieldLogger
}

func NewRecorder(sink Sink, log logrus.FieldLogger) *Recorder {
	return &Recorder{sink: sink, log: log}
}

func (r *Recorder) Record(topic string, event interface{}) {
	if r == nil || r.sink == nil {
		return
	}
	msg, err := json.Marshal(event)
	if err != nil {
		r.log.WithError(err).WithField("topic", topic).Warn("serializing telemetry event")
		return
	}
	if err := r.sink.WriteMessage(topic, msg); err != nil {
		r.log.WithError(err).WithField("topic", topic).Warn("writing telemetry event")
	}
}

func (r *Recorder) Close() error {
	if r == nil || r.sink == nil {
		return nil
	}
	return r.sink.Close()
}

// ConsoleSink prints events to stdout, one JSON object per line.
type ConsoleSink struct{}

func (c *ConsoleSink) WriteMessage(topic string, msg []byte) error {
	fmt.Printf("%s: %s\n", topic, string(msg))
	return nil
}

func (c *ConsoleSink) Close() error {
	return nil
}

// FileSink appends events to one JSON-lines file per topic.
type FileSink struct {
	mu     sync.Mutex
	folder string
	files  map[string]*os.File
}

func NewFileSink(basePath, folder string) (*FileSink, error) {
	dir := filepath.Join(basePath, folder)
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("creating output folder: %w", err)
	}
	return &FileSink{
		folder: dir,
		files:  make(map[string]*os.File),
	}, nil
}

func (f *FileSink) WriteMessage(topic string, msg []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	file, ok := f.files[topic]
	if !ok {
		var err error
		path := filepath.Join(f.folder, topic+".jsonl")
		file, err = os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("opening %s: %w", path, err)
		}
		f.files[topic] = file
	}

	if _, err := file.Write(append(msg, '\n')); err != nil {
		return fmt.Errorf("writing event: %w", err)
	}
	return nil
}

func (f *FileSink) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	var firstErr error
	for topic, file := range f.files {
		if err := file.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(f.files, topic)
	}
	return firstErr
}
