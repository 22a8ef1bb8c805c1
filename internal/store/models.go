// Package store persists the chain index gorm+sqlite, grounded on the
// corpus's own internal/database (connection singleton, db_types.BigInt
// column wrapper) and internal/database/repositories (the
// InitializeGlobal* singleton-repository idiom).
package store

import (
	db_types "github.com/nivschuman/difficulty-core/internal/database/types"
)

// NodeDB is the gorm-mapped row for one chain index entry. BlockHash is
// its primary key so retargeting lookups (by hash) and chain walks (by
// prev hash) both hit an index. CumulativeWork rides on the corpus's own
// BigInt column type, letting sqlite store an arbitrary-width integer as
// its big-endian byte encoding.
type NodeDB struct {
	BlockHash      string `gorm:"primaryKey"`
	PrevHash       string `gorm:"index"`
	Height         uint32 `gorm:"index"`
	Version        uint32
	Nonce          uint32
	NBits          uint32
	Time           uint32
	CumulativeWork db_types.BigInt `gorm:"type:blob"`
}

func (NodeDB) TableName() string {
	return "chain_index_nodes"
}
