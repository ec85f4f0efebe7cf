package app

import (
	"github.com/bayanihan-ph/relief-backend/internal/clients/gcs"
	"github.com/bayanihan-ph/relief-backend/internal/clients/redis"
	"github.com/bayanihan-ph/relief-backend/internal/pkg/logger"
)

type Clients struct {
	Bucket gcs.BucketService
	Store  redis.Store
}

func wireClients(log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")
	bucket, err := gcs.NewBucketService(log)
	if err != nil {
		return Clients{}, err
	}
	store, err := redis.NewStore(log)
	if err != nil {
		return Clients{}, err
	}
	return Clients{Bucket: bucket, Store: store}, nil
}
