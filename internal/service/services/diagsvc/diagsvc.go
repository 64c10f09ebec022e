package diagsvc

import (
	"context"
	"time"

	"github.com/corray333/tutti-amici/internal/dal/interfaces/idocumentrepo"
)

const (
	collectionsLimit = 10
	errorTextLimit   = 50
	defaultTimeout   = 5 * time.Second
)

const (
	BackendRunning = "running"

	DatabaseNotAvailable = "not available"
	DatabaseWorking      = "connected & working"
	DatabaseErrorPrefix  = "connected but error: "

	ConnectionConnected    = "connected"
	ConnectionNotConnected = "not connected"

	ValueSet    = "set"
	ValueNotSet = "not set"
)

// Report is the diagnostic snapshot returned by Diagnose.
type Report struct {
	Backend          string   `json:"backend"`
	Database         string   `json:"database"`
	DatabaseURL      string   `json:"database_url"`
	DatabaseName     string   `json:"database_name"`
	ConnectionStatus string   `json:"connection_status"`
	Collections      []string `json:"collections"`
}

// DiagnosticsService reports backend and database health.
type DiagnosticsService struct {
	repo         idocumentrepo.IDocumentRepository
	urlSet       bool
	nameSet      bool
	probeTimeout time.Duration
}

// option is a function that configures the DiagnosticsService.
type option func(*DiagnosticsService)

// MustNewDiagnosticsService creates a new DiagnosticsService.
func MustNewDiagnosticsService(opts ...option) *DiagnosticsService {
	s := &DiagnosticsService{
		probeTimeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// WithDocumentRepository sets the document store to probe.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithDocumentRepository(repo idocumentrepo.IDocumentRepository) option {
	return func(s *DiagnosticsService) {
		s.repo = repo
	}
}

// WithConfigPresence records whether the database URL and name are configured.
// Only presence is reported, never the values.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithConfigPresence(urlSet, nameSet bool) option {
	return func(s *DiagnosticsService) {
		s.urlSet = urlSet
		s.nameSet = nameSet
	}
}

// WithProbeTimeout bounds the time spent listing collections.
//
//goland:noinspection GoExportedFuncWithUnexportedType
func WithProbeTimeout(timeout time.Duration) option {
	return func(s *DiagnosticsService) {
		if timeout > 0 {
			s.probeTimeout = timeout
		}
	}
}

// Diagnose never fails: database problems are reported as status strings.
func (s *DiagnosticsService) Diagnose(ctx context.Context) Report {
	report := Report{
		Backend:          BackendRunning,
		Database:         DatabaseNotAvailable,
		DatabaseURL:      presence(s.urlSet),
		DatabaseName:     presence(s.nameSet),
		ConnectionStatus: ConnectionNotConnected,
		Collections:      []string{},
	}

	if s.repo == nil {
		return report
	}

	report.ConnectionStatus = ConnectionConnected

	ctx, cancel := context.WithTimeout(ctx, s.probeTimeout)
	defer cancel()

	names, err := s.repo.ListCollections(ctx, collectionsLimit)
	if err != nil {
		report.Database = DatabaseErrorPrefix + truncate(err.Error(), errorTextLimit)

		return report
	}

	if len(names) > collectionsLimit {
		names = names[:collectionsLimit]
	}
	if names != nil {
		report.Collections = names
	}
	report.Database = DatabaseWorking

	return report
}

func presence(set bool) string {
	if set {
		return ValueSet
	}

	return ValueNotSet
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n])
}
