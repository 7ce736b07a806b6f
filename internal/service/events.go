package service

import (
	"time"

	"go-pos-ledger/internal/model"
)

// EventPublisher receives stock changes after they are persisted.
type EventPublisher interface {
	Publish(event model.StockEvent)
}

type nopPublisher struct{}

func (nopPublisher) Publish(model.StockEvent) {}

// Clock returns the current time; services stamp records with it.
type Clock func() time.Time
