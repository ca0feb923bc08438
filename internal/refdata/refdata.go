// Package refdata serves the canonical auction and city reference lists.
// Lists are loaded lazily from storage and cached for the life of the
// owning Catalog instance; a fresh Catalog means a fresh load.
package refdata

import (
	"context"
	"log"
	"sync"
)

// AuctionStore reads all canonical auction names from storage.
type AuctionStore interface {
	ListAuctions(ctx context.Context) ([]string, error)
}

// CityStore reads all canonical city strings from storage.
type CityStore interface {
	ListCities(ctx context.Context) ([]string, error)
}

// fallbackAuctions keeps the service usable when the reference store is
// down. There is no equivalent safe fallback for cities.
var fallbackAuctions = []string{"Copart", "IAAI", "Manheim", "Adesa"}

// Catalog caches the reference lists. Population is idempotent, so the
// once-guarded lazy load is safe under interleaved access.
type Catalog struct {
	auctions AuctionStore
	cities   CityStore

	auctionOnce sync.Once
	auctionList []string

	cityOnce sync.Once
	cityList []string
}

func NewCatalog(auctions AuctionStore, cities CityStore) *Catalog {
	return &Catalog{auctions: auctions, cities: cities}
}

// Auctions returns the canonical auction names. On storage failure it
// degrades to a fixed fallback list rather than failing the caller.
func (c *Catalog) Auctions(ctx context.Context) []string {
	c.auctionOnce.Do(func() {
		list, err := c.auctions.ListAuctions(ctx)
		if err != nil || len(list) == 0 {
			if err != nil {
				log.Printf("[refdata] auction list load failed, using fallback: %v", err)
			}
			c.auctionList = fallbackAuctions
			return
		}
		c.auctionList = list
	})
	return c.auctionList
}

// Cities returns the canonical city strings. On storage failure it returns
// an empty list: a missing city list means "nothing matches", not a hard
// error.
func (c *Catalog) Cities(ctx context.Context) []string {
	c.cityOnce.Do(func() {
		list, err := c.cities.ListCities(ctx)
		if err != nil {
			log.Printf("[refdata] city list load failed, matching disabled: %v", err)
			return
		}
		c.cityList = list
	})
	return c.cityList
}
