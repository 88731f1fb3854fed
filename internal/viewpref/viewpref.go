package viewpref

import (
	"context"
	"encoding/json"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

// ViewPreferences describes how one logical table is laid out for the
// caller: column order and which columns are hidden. Zero value means
// "no preference".
type ViewPreferences struct {
	ColumnOrder   []string `json:"column_order,omitempty"`
	HiddenColumns []string `json:"hidden_columns,omitempty"`
}

type Service interface {
	Get(ctx context.Context, feature string) (ViewPreferences, error)
	SetColumnOrder(ctx context.Context, feature string, columns []string) error
	SetHiddenColumns(ctx context.Context, feature string, columns []string) error
}

type ServiceParams struct {
	fx.In

	Log *zap.Logger
	KV  KV
}

type service struct {
	log *zap.Logger
	kv  KV
}

func NewService(p ServiceParams) Service {
	return &service{
		log: p.Log.Named("viewpref.service"),
		kv:  p.KV,
	}
}

func (s *service) Get(ctx context.Context, feature string) (ViewPreferences, error) {
	prefs := ViewPreferences{}

	order, err := s.load(ctx, feature+"-column-order")
	if err != nil {
		return ViewPreferences{}, err
	}
	prefs.ColumnOrder = order

	hidden, err := s.load(ctx, feature+"-hidden-columns")
	if err != nil {
		return ViewPreferences{}, err
	}
	prefs.HiddenColumns = hidden

	return prefs, nil
}

func (s *service) SetColumnOrder(ctx context.Context, feature string, columns []string) error {
	return s.store(ctx, feature+"-column-order", columns)
}

func (s *service) SetHiddenColumns(ctx context.Context, feature string, columns []string) error {
	return s.store(ctx, feature+"-hidden-columns", columns)
}

// load decodes a stored JSON string slice. Absent or malformed payloads
// mean "no preference" and decode to nil.
func (s *service) load(ctx context.Context, key string) ([]string, error) {
	raw, found, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}

	var columns []string
	if err := json.Unmarshal([]byte(raw), &columns); err != nil {
		s.log.Warn("discarding malformed view preference", zap.String("key", key))
		return nil, nil
	}
	return columns, nil
}

func (s *service) store(ctx context.Context, key string, columns []string) error {
	if columns == nil {
		columns = []string{}
	}
	payload, err := json.Marshal(columns)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, key, string(payload))
}
