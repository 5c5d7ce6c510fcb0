package amqp

import (
	"encoding/json"
	"time"
)

// LedgerSyncMessage asks the worker to export one transaction.
// It carries only the ID; the worker reads the full row from the
// database so the queue never holds stale amounts.
type LedgerSyncMessage struct {
	TransactionID int64     `json:"transactionId"`
	Timestamp     time.Time `json:"timestamp"`
}

func NewLedgerSyncMessage(transactionID int64) *LedgerSyncMessage {
	return &LedgerSyncMessage{
		TransactionID: transactionID,
		Timestamp:     time.Now(),
	}
}

func (m *LedgerSyncMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

func LedgerSyncMessageFromJSON(data []byte) (*LedgerSyncMessage, error) {
	var msg LedgerSyncMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
