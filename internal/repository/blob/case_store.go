// Package blob implements repository.CaseRepository on top of a single
// JSON-encoded key in a storage.BlobStore.
package blob

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"casevault/internal/model"
	"casevault/internal/repository"
	"casevault/internal/storage"
)

// DefaultKey is the archive key used by the mobile app.
const DefaultKey = "cases"

// errNoChange lets an update callback skip the write.
var errNoChange = errors.New("no change")

// ErrArchiveNotPreserved is returned by writes while the stored archive is
// undecodable and no quarantine copy of it could be stored.
var ErrArchiveNotPreserved = errors.New("corrupt archive could not be preserved")

// Options configures a CaseStore. The zero value is usable.
type Options struct {
	// Key names the blob holding the archive. Defaults to DefaultKey.
	Key string
	// Logger receives corruption and write-failure events.
	Logger zerolog.Logger
	// Registerer, when set, receives the casevault_store_operations_total counter.
	Registerer prometheus.Registerer
}

// CaseStore keeps every case in one blob. All operations hold a single
// mutex for the whole read-modify-write cycle, so writes for different
// cases are serialized rather than racing on the shared blob.
type CaseStore struct {
	store  storage.BlobStore
	key    string
	log    zerolog.Logger
	ops    *prometheus.CounterVec
	tracer trace.Tracer

	mu sync.Mutex
	// quarantined is the key of the last stored quarantine copy.
	quarantined string
	// unpreserved is set while the archive is corrupt and not yet copied aside.
	unpreserved bool
}

var _ repository.CaseRepository = (*CaseStore)(nil)

// NewCaseStore builds a CaseStore over store.
func NewCaseStore(store storage.BlobStore, opts Options) (*CaseStore, error) {
	if store == nil {
		return nil, errors.New("blob store is required")
	}
	key := opts.Key
	if key == "" {
		key = DefaultKey
	}

	ops := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "casevault_store_operations_total",
			Help: "Case archive operations by name and outcome.",
		},
		[]string{"op", "status"},
	)
	if opts.Registerer != nil {
		if err := opts.Registerer.Register(ops); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				return nil, fmt.Errorf("register store metrics: %w", err)
			}
			ops = are.ExistingCollector.(*prometheus.CounterVec)
		}
	}

	return &CaseStore{
		store:  store,
		key:    key,
		log:    opts.Logger.With().Str("component", "case_store").Str("key", key).Logger(),
		ops:    ops,
		tracer: otel.Tracer("casevault/internal/repository/blob"),
	}, nil
}

// ListCases decodes the archive. A missing blob is an empty archive; a
// corrupt one is quarantined and also reads as empty.
func (s *CaseStore) ListCases(ctx context.Context) (cases []model.Case, err error) {
	ctx, done := s.begin(ctx, "list_cases")
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	cases, err = s.load(ctx)
	if err != nil {
		return nil, err
	}
	if cases == nil {
		cases = []model.Case{}
	}
	return cases, nil
}

func (s *CaseStore) GetCase(ctx context.Context, id string) (c *model.Case, err error) {
	ctx, done := s.begin(ctx, "get_case", attribute.String("case.id", id))
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	cases, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	i := indexOf(cases, id)
	if i < 0 {
		return nil, repository.ErrCaseNotFound
	}
	return &cases[i], nil
}

func (s *CaseStore) SaveCase(ctx context.Context, c *model.Case) (err error) {
	if c == nil || c.ID == "" {
		return errors.New("save case: id is required")
	}
	ctx, done := s.begin(ctx, "save_case", attribute.String("case.id", c.ID))
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	cases, err := s.load(ctx)
	if err != nil {
		return err
	}
	if i := indexOf(cases, c.ID); i >= 0 {
		cases[i] = *c
	} else {
		cases = append(cases, *c)
	}
	return s.write(ctx, cases)
}

func (s *CaseStore) DeleteCase(ctx context.Context, id string) (err error) {
	ctx, done := s.begin(ctx, "delete_case", attribute.String("case.id", id))
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	cases, err := s.load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(cases, id)
	if i < 0 {
		return nil
	}
	cases = append(cases[:i], cases[i+1:]...)
	return s.write(ctx, cases)
}

func (s *CaseStore) UpdateCase(ctx context.Context, id string, fn func(c *model.Case) error) (err error) {
	ctx, done := s.begin(ctx, "update_case", attribute.String("case.id", id))
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()

	cases, err := s.load(ctx)
	if err != nil {
		return err
	}
	i := indexOf(cases, id)
	if i < 0 {
		return repository.ErrCaseNotFound
	}
	if err := fn(&cases[i]); err != nil {
		if errors.Is(err, errNoChange) {
			return nil
		}
		return err
	}
	cases[i].ID = id
	return s.write(ctx, cases)
}

func (s *CaseStore) CreateFolder(ctx context.Context, caseID string, folder model.Folder) error {
	return s.UpdateCase(ctx, caseID, func(c *model.Case) error {
		if c.FolderIndex(folder.ID) >= 0 {
			return repository.ErrFolderExists
		}
		if folder.Documents == nil {
			folder.Documents = []model.Document{}
		}
		c.Folders = append(c.Folders, folder)
		return nil
	})
}

func (s *CaseStore) AddDocumentToFolder(ctx context.Context, caseID, folderID string, doc model.Document) error {
	return s.UpdateCase(ctx, caseID, func(c *model.Case) error {
		i := c.FolderIndex(folderID)
		if i < 0 {
			return repository.ErrFolderNotFound
		}
		doc.FolderID = folderID
		c.Folders[i].Documents = append(c.Folders[i].Documents, doc)
		return nil
	})
}

func (s *CaseStore) DeleteFolder(ctx context.Context, caseID, folderID string) error {
	return s.UpdateCase(ctx, caseID, func(c *model.Case) error {
		i := c.FolderIndex(folderID)
		if i < 0 {
			return errNoChange
		}
		c.Folders = append(c.Folders[:i], c.Folders[i+1:]...)
		return nil
	})
}

// load must be called with mu held.
func (s *CaseStore) load(ctx context.Context) ([]model.Case, error) {
	raw, err := s.store.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, storage.ErrBlobNotFound) {
			s.unpreserved = false
			return nil, nil
		}
		return nil, fmt.Errorf("read archive: %w", err)
	}

	var cases []model.Case
	if err := json.Unmarshal(raw, &cases); err != nil {
		s.quarantine(ctx, raw, err)
		return nil, nil
	}
	s.unpreserved = false
	return withLists(cases), nil
}

// write must be called with mu held, after load.
func (s *CaseStore) write(ctx context.Context, cases []model.Case) error {
	if s.unpreserved {
		return fmt.Errorf("write archive: %w", ErrArchiveNotPreserved)
	}
	raw, err := json.Marshal(withLists(cases))
	if err != nil {
		return fmt.Errorf("encode archive: %w", err)
	}
	if err := s.store.Put(ctx, s.key, raw); err != nil {
		s.log.Error().Str("event", "archive_write_failed").Err(err).Msg("")
		return fmt.Errorf("write archive: %w", err)
	}
	return nil
}

// withLists returns a copy of cases in which every folder list and every
// document list is non-nil, so the archive never carries null for them.
func withLists(cases []model.Case) []model.Case {
	out := make([]model.Case, len(cases))
	for i, c := range cases {
		folders := make([]model.Folder, len(c.Folders))
		copy(folders, c.Folders)
		for j := range folders {
			if folders[j].Documents == nil {
				folders[j].Documents = []model.Document{}
			}
		}
		c.Folders = folders
		out[i] = c
	}
	return out
}

// quarantine copies an undecodable archive aside so the next write does not
// destroy it. The copy key derives from the content, so the same bytes are
// copied once however often they are read.
func (s *CaseStore) quarantine(ctx context.Context, raw []byte, cause error) {
	sum := sha256.Sum256(raw)
	qkey := fmt.Sprintf("%s.corrupt.%x", s.key, sum[:8])
	if qkey == s.quarantined {
		s.unpreserved = false
		return
	}

	ev := s.log.Error().
		Str("event", "archive_corrupt").
		Str("quarantine_key", qkey).
		Int("size_bytes", len(raw)).
		AnErr("decode_error", cause)
	if err := s.store.Put(ctx, qkey, raw); err != nil {
		s.unpreserved = true
		ev.Str("status", "error").AnErr("quarantine_error", err).
			Msg("archive could not be decoded or copied aside; writes are refused")
		return
	}
	s.quarantined = qkey
	s.unpreserved = false
	ev.Str("status", "quarantined").Msg("archive could not be decoded; continuing with an empty case list")
}

func (s *CaseStore) begin(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(error)) {
	ctx, span := s.tracer.Start(ctx, "CaseStore."+op, trace.WithAttributes(attrs...))
	return ctx, func(err error) {
		status := "ok"
		if err != nil {
			status = "error"
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		s.ops.WithLabelValues(op, status).Inc()
		span.End()
	}
}

func indexOf(cases []model.Case, id string) int {
	for i := range cases {
		if cases[i].ID == id {
			return i
		}
	}
	return -1
}
