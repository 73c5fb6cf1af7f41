package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/klauspost/compress/zstd"

	appctx "salesledger/internal/core/context"
	"salesledger/internal/core/id"
	"salesledger/internal/domain/audit"
	"salesledger/pkg/logger"
)

// CompressionAlgo specifies the compression applied to a stored payload.
type CompressionAlgo string

const (
	CompressionNone CompressionAlgo = "none"
	CompressionZstd CompressionAlgo = "zstd"
)

// auditRow is the sys_audit table shape.
type auditRow struct {
	ID                id.ID           `db:"id"`
	Entity            string          `db:"entity"`
	EntityID          id.ID           `db:"entity_id"`
	Action            string          `db:"action"`
	ActorID           string          `db:"actor_id"`
	Payload           json.RawMessage `db:"payload"`
	PayloadCompressed []byte          `db:"payload_compressed"`
	CompressionAlgo   CompressionAlgo `db:"compression_algo"`
	CreatedAt         time.Time       `db:"created_at"`
}

// AuditRecorder persists document audit entries to the sys_audit table.
// Payloads above the threshold are stored zstd-compressed.
//
// Implements audit.Recorder: recording is best-effort and never fails the
// calling operation.
type AuditRecorder struct {
	txManager         *TxManager
	encoder           *zstd.Encoder
	decoder           *zstd.Decoder
	compressThreshold int
}

var _ audit.Recorder = (*AuditRecorder)(nil)

// NewAuditRecorder creates an audit recorder.
func NewAuditRecorder(txManager *TxManager) (*AuditRecorder, error) {
	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return nil, fmt.Errorf("create zstd encoder: %w", err)
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("create zstd decoder: %w", err)
	}

	return &AuditRecorder{
		txManager:         txManager,
		encoder:           encoder,
		decoder:           decoder,
		compressThreshold: 10 * 1024,
	}, nil
}

// Close releases the compression codecs.
func (r *AuditRecorder) Close() {
	if r.encoder != nil {
		r.encoder.Close()
	}
	if r.decoder != nil {
		r.decoder.Close()
	}
}

// Record implements audit.Recorder. Failures are logged, not returned:
// a broken trail must not block a payment.
func (r *AuditRecorder) Record(ctx context.Context, entity string, entityID id.ID, action audit.Action, payload map[string]any) {
	row := auditRow{
		ID:              id.New(),
		Entity:          entity,
		EntityID:        entityID,
		Action:          string(action),
		CompressionAlgo: CompressionNone,
		CreatedAt:       time.Now().UTC(),
	}

	if actor := appctx.GetActor(ctx); actor != nil {
		row.ActorID = actor.ActorID
	}

	if len(payload) > 0 {
		raw, err := json.Marshal(payload)
		if err != nil {
			logger.Error(ctx, "audit payload marshal failed", "entity", entity, "error", err)
			return
		}
		if len(raw) > r.compressThreshold {
			row.PayloadCompressed = r.encoder.EncodeAll(raw, nil)
			row.CompressionAlgo = CompressionZstd
		} else {
			row.Payload = raw
		}
	}

	querier := r.txManager.GetQuerier(ctx)
	_, err := querier.Exec(ctx, `
		INSERT INTO sys_audit (
			id, entity, entity_id, action, actor_id,
			payload, payload_compressed, compression_algo, created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		row.ID, row.Entity, row.EntityID, row.Action, row.ActorID,
		row.Payload, row.PayloadCompressed, row.CompressionAlgo, row.CreatedAt,
	)
	if err != nil {
		logger.Error(ctx, "audit insert failed",
			"entity", entity,
			"entity_id", entityID.String(),
			"action", string(action),
			"error", err,
		)
	}
}

// History retrieves the audit trail for one document, newest first.
func (r *AuditRecorder) History(ctx context.Context, entity string, entityID id.ID, limit int) ([]audit.Entry, error) {
	if limit <= 0 {
		limit = 100
	}

	rows, err := r.txManager.GetQuerier(ctx).Query(ctx, `
		SELECT id, entity, entity_id, action, actor_id,
		       payload, payload_compressed, compression_algo, created_at
		FROM sys_audit
		WHERE entity = $1 AND entity_id = $2
		ORDER BY created_at DESC
		LIMIT $3
	`, entity, entityID, limit)
	if err != nil {
		return nil, fmt.Errorf("query audit history: %w", err)
	}
	defer rows.Close()

	var entries []audit.Entry
	for rows.Next() {
		var row auditRow
		err := rows.Scan(
			&row.ID, &row.Entity, &row.EntityID, &row.Action, &row.ActorID,
			&row.Payload, &row.PayloadCompressed, &row.CompressionAlgo, &row.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan audit row: %w", err)
		}

		raw := row.Payload
		if row.CompressionAlgo == CompressionZstd && len(row.PayloadCompressed) > 0 {
			raw, err = r.decoder.DecodeAll(row.PayloadCompressed, nil)
			if err != nil {
				return nil, fmt.Errorf("decompress audit payload: %w", err)
			}
		}

		entry := audit.Entry{
			ID:        row.ID,
			Entity:    row.Entity,
			EntityID:  row.EntityID,
			Action:    audit.Action(row.Action),
			ActorID:   row.ActorID,
			CreatedAt: row.CreatedAt,
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &entry.Payload); err != nil {
				return nil, fmt.Errorf("unmarshal audit payload: %w", err)
			}
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
