package store

import (
	"errors"
	"math/big"

	"github.com/nivschuman/difficulty-core/internal/bigint"
	"github.com/nivschuman/difficulty-core/internal/chainindex"
	db_types "github.com/nivschuman/difficulty-core/internal/database/types"
	"gorm.io/gorm"
)

// ChainIndexRepository persists chain index nodes and reconstructs the
// back-linked in-memory chain chainindex.LastOfKind/LastOfAlgo walk,
// following the corpus's BlockRepository (a thin wrapper over *gorm.DB
// with domain-shaped methods rather than raw queries at call sites).
type ChainIndexRepository struct {
	db *gorm.DB
}

var GlobalChainIndexRepository *ChainIndexRepository

// InitializeGlobalChainIndexRepository mirrors the corpus's
// InitializeGlobalBlockRepository: idempotent, safe to call once per
// process during startup.
func InitializeGlobalChainIndexRepository(db *gorm.DB) error {
	if GlobalChainIndexRepository != nil {
		return nil
	}

	GlobalChainIndexRepository = &ChainIndexRepository{db: db}
	return nil
}

func NewChainIndexRepository(db *gorm.DB) *ChainIndexRepository {
	return &ChainIndexRepository{db: db}
}

// InsertNode stores a node keyed by its own block hash, along with its
// predecessor's hash and cumulative chain work. It is idempotent: a hash
// already present is left untouched rather than erroring, since chain
// index entries never change once mined.
func (r *ChainIndexRepository) InsertNode(n *chainindex.Node, prevHash bigint.Uint256, cumulativeWork db_types.BigInt) error {
	row := nodeToNodeDB(n, prevHash, cumulativeWork)

	return r.db.Where("block_hash = ?", row.BlockHash).
		FirstOrCreate(row).Error
}

// GetNode returns the node stored under hash, with Prev left nil; callers
// walking the chain use LoadChain instead.
func (r *ChainIndexRepository) GetNode(hash bigint.Uint256) (*chainindex.Node, error) {
	var row NodeDB
	err := r.db.Where("block_hash = ?", hashToHex(hash)).First(&row).Error
	if err != nil {
		return nil, err
	}
	return nodeDBToNode(&row), nil
}

// LoadChain reconstructs the back-linked chainindex.Node list rooted at
// tipHash, walking PrevHash lookups until it reaches a hash with no
// stored predecessor (genesis).
func (r *ChainIndexRepository) LoadChain(tipHash bigint.Uint256) (*chainindex.Node, error) {
	var rows []NodeDB
	if err := r.db.Order("height desc").Find(&rows).Error; err != nil {
		return nil, err
	}

	byHash := make(map[string]*NodeDB, len(rows))
	for i := range rows {
		byHash[rows[i].BlockHash] = &rows[i]
	}

	tipKey := hashToHex(tipHash)
	row, ok := byHash[tipKey]
	if !ok {
		return nil, errors.New("store: no chain index node for that hash")
	}

	var head, prev *chainindex.Node
	for {
		node := nodeDBToNode(row)
		if prev != nil {
			prev.Prev = node
		} else {
			head = node
		}
		prev = node

		next, ok := byHash[row.PrevHash]
		if !ok {
			break
		}
		row = next
	}

	return head, nil
}

// TipByWork returns the stored node with the greatest cumulative work,
// the persisted equivalent of the corpus's InActiveChain flag on
// BlockDB: the node the retargeter should treat as the current tip.
func (r *ChainIndexRepository) TipByWork() (*chainindex.Node, error) {
	var rows []NodeDB
	if err := r.db.Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("store: chain index is empty")
	}

	best := &rows[0]
	bestWork := (*big.Int)(&best.CumulativeWork)
	for i := 1; i < len(rows); i++ {
		work := (*big.Int)(&rows[i].CumulativeWork)
		if work.Cmp(bestWork) > 0 {
			best = &rows[i]
			bestWork = work
		}
	}

	return nodeDBToNode(best), nil
}
