package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-faster/errors"

	"utamahr/internal/platform/querier"
)

const (
	ActionDocumentDownload = "document.download"
	ActionDocumentRender   = "document.render"
	ActionLogin            = "auth.login"
)

type Event struct {
	ID         string          `json:"id"`
	ActorID    string          `json:"actorId"`
	Action     string          `json:"action"`
	EntityType string          `json:"entityType"`
	EntityID   string          `json:"entityId"`
	RequestID  string          `json:"requestId"`
	IP         string          `json:"ip"`
	CreatedAt  time.Time       `json:"createdAt"`
	Detail     json.RawMessage `json:"detail,omitempty"`
}

// Entry is one event to record.
type Entry struct {
	TenantID   string
	ActorID    string
	Action     string
	EntityType string
	EntityID   string
	RequestID  string
	IP         string
	Detail     any
}

type Filter struct {
	Action     string
	EntityType string
	ActorUser  string
}

type Service struct {
	DB querier.Querier
}

func New(db querier.Querier) *Service {
	return &Service{DB: db}
}

func (s *Service) Record(ctx context.Context, e Entry) error {
	var detail []byte
	if e.Detail != nil {
		payload, err := json.Marshal(e.Detail)
		if err != nil {
			return errors.Wrap(err, "marshal audit detail")
		}
		detail = payload
	}

	_, err := s.DB.Exec(ctx, `
    INSERT INTO audit_events (tenant_id, actor_user_id, action, entity_type, entity_id, detail_json, request_id, ip)
    VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
  `, e.TenantID, nullIfEmpty(e.ActorID), e.Action, e.EntityType, e.EntityID, detail, e.RequestID, e.IP)
	if err != nil {
		return errors.Wrap(err, "insert audit event")
	}
	return nil
}

func (s *Service) Count(ctx context.Context, tenantID string, filter Filter) (int, error) {
	query, args := buildBaseQuery("SELECT COUNT(1)", tenantID, filter)
	var total int
	if err := s.DB.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, errors.Wrap(err, "count audit events")
	}
	return total, nil
}

func (s *Service) List(ctx context.Context, tenantID string, filter Filter, limit, offset int) ([]Event, error) {
	query, args := buildBaseQuery(`SELECT id::text, coalesce(actor_user_id::text, ''), action, entity_type, entity_id,
           coalesce(request_id, ''), coalesce(ip, ''), created_at, detail_json`, tenantID, filter)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query audit events")
	}
	defer rows.Close()

	out := []Event{}
	for rows.Next() {
		var evt Event
		if err := rows.Scan(&evt.ID, &evt.ActorID, &evt.Action, &evt.EntityType, &evt.EntityID, &evt.RequestID, &evt.IP, &evt.CreatedAt, &evt.Detail); err != nil {
			return nil, errors.Wrap(err, "scan audit event")
		}
		out = append(out, evt)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate audit events")
	}
	return out, nil
}

// Purge deletes a tenant's events recorded before the cutoff.
func (s *Service) Purge(ctx context.Context, tenantID string, before time.Time) (int64, error) {
	tag, err := s.DB.Exec(ctx, `DELETE FROM audit_events WHERE tenant_id = $1 AND created_at < $2`, tenantID, before)
	if err != nil {
		return 0, errors.Wrap(err, "purge audit events")
	}
	return tag.RowsAffected(), nil
}

func buildBaseQuery(prefix, tenantID string, filter Filter) (string, []any) {
	query := prefix + " FROM audit_events WHERE tenant_id = $1"
	args := []any{tenantID}
	if filter.Action != "" {
		query += fmt.Sprintf(" AND action = $%d", len(args)+1)
		args = append(args, filter.Action)
	}
	if filter.EntityType != "" {
		query += fmt.Sprintf(" AND entity_type = $%d", len(args)+1)
		args = append(args, filter.EntityType)
	}
	if filter.ActorUser != "" {
		query += fmt.Sprintf(" AND actor_user_id::text = $%d", len(args)+1)
		args = append(args, filter.ActorUser)
	}
	return query, args
}

func nullIfEmpty(value string) any {
	if value == "" {
		return nil
	}
	return value
}
