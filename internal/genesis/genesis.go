// Package genesis builds the first block of each network's chain: a
// single coinbase transaction whose txid doubles as the merkle root,
// wrapped in a header with a zero previous-block hash. Grounded on
// original_source's CreateGenesisBlock (chainparams.cpp) for the field
// layout, the two literal scriptSig patterns it uses, and the shared
// timestamp/output-key literals every network's genesis carries.
package genesis

import (
	"encoding/hex"

	"github.com/nivschuman/difficulty-core/internal/algo"
	"github.com/nivschuman/difficulty-core/internal/bigint"
	"github.com/nivschuman/difficulty-core/internal/chainparams"
	"github.com/nivschuman/difficulty-core/internal/crypto/hash"
	"github.com/nivschuman/difficulty-core/internal/crypto/merkle"
)

// Block is a genesis block: a header plus the single coinbase
// transaction that seeds it. It is never chained onto a predecessor, so
// it carries no chainindex.Node.
type Block struct {
	Header   algo.Header
	Coinbase *CoinbaseTx
}

// CreateGenesisBlock builds a genesis block the way original_source's
// CreateGenesisBlock does: pack the scriptSig with the marker/timestamp
// pattern implied by reward, take its txid as the sole merkle leaf, and
// leave hashPrevBlock zero. original_source's own CreateGenesisBlock
// additionally asserts the resulting block's PoW hash (GetPoWHash,
// always the opaque Quark primitive here regardless of network or
// version tag) equals a literal or falls under the target; that
// assertion cannot be reproduced as library code because it depends on
// the same never-implemented hash primitive GetHash below calls into
// for untagged headers (see GetHash) — the fields that don't require
// it are asserted instead in this package's own tests.
func CreateGenesisBlock(timestamp string, outputScript []byte, nTime uint32, nNonce uint32, nBits uint32, nVersion uint32, reward int64) *Block {
	coinbase := buildCoinbaseTx(timestamp, outputScript, reward)

	root := merkle.CalculateMerkleRoot([]hash.Hashable{coinbase})

	header := algo.Header{
		Version:        nVersion,
		HashPrevBlock:  bigint.Uint256{},
		HashMerkleRoot: bigint.Uint256FromBytesLE(root),
		Time:           nTime,
		NBits:          nBits,
		Nonce:          nNonce,
	}

	return &Block{Header: header, Coinbase: coinbase}
}

// GetHash is the genesis block's identity hash, mirroring
// CBlockHeader::GetHash()'s version split: a tagged header (Version >
// 1 — every network here but Main, whose literal nVersion is 1) hashes
// with double SHA-256, the same convention used for every other block
// hash in the chain. An untagged legacy header hashes with whatever
// primitive GetPoWHash defaults to, which for every algo tag this core
// carries is Quark — one of the opaque hash primitives treated as an
// external collaborator (see algo.NewOpaqueHashTable) and never
// implemented, so calling GetHash on Main's genesis panics the same
// way invoking any other unwired entry of that table does.
func (b *Block) GetHash() bigint.Uint256 {
	if b.Header.Version > 1 {
		digest := hash.HashBytesD(b.Header.AsBytes())
		return bigint.Uint256FromBytesLE(digest)
	}

	var header80 [80]byte
	copy(header80[:], b.Header.AsBytes())
	return algo.NewOpaqueHashTable()[algo.AlgoPowQuark](header80)
}

// genesisTimestamp is the literal marker text original_source's
// CreateGenesisBlock(nTime, nNonce, nBits, nVersion, reward) convenience
// wrapper hardcodes into every network's coinbase scriptSig
// (chainparams.cpp: "http://www.bbc.co.uk/news/world-us-canada-42926976").
const genesisTimestamp = "http://www.bbc.co.uk/news/world-us-canada-42926976"

// genesisOutputPubKey is the compressed public key original_source's
// genesisOutputScript pays block subsidy to, shared verbatim across all
// three networks (chainparams.cpp).
var genesisOutputPubKey = mustDecodeHex("03b95000b2b06e391c058ea14d47ac3c525753c68460864f254ada5a63e27a8134")

// genesisOutputScript builds the pay-to-pubkey script the genesis
// coinbase's vout carries: a data push of genesisOutputPubKey followed
// by OP_CHECKSIG. Main's zero reward means CreateGenesisBlock never
// serializes a vout at all, so the script only matters for test/regtest.
func genesisOutputScript() []byte {
	return append(opPush(genesisOutputPubKey), 0xac)
}

func mustDecodeHex(s string) []byte {
	b, err := hex.DecodeString(s)
	if err != nil {
		panic("genesis: invalid literal pubkey hex: " + s)
	}
	return b
}

// Main returns the mainnet genesis block, built from original_source's
// literal CreateGenesisBlock(1517690700, 561379, powLimitCompact, 1, 0)
// call: zero reward, no payout output.
func Main() *Block {
	return CreateGenesisBlock(
		genesisTimestamp,
		genesisOutputScript(),
		1517690700,
		561379,
		mainGenesisBits,
		1,
		0,
	)
}

// Test returns the testnet genesis block, built from original_source's
// literal call with a nonzero reward and the tagged Quark version.
func Test() *Block {
	return CreateGenesisBlock(
		genesisTimestamp,
		genesisOutputScript(),
		1574924400,
		2961,
		testGenesisBits,
		algo.CurrentVersion|algo.GetVersionForAlgo(algo.AlgoPowQuark),
		10000*coin,
	)
}

// Regtest returns the regtest genesis block, mined at a trivially low
// difficulty for fast local chain construction.
func Regtest() *Block {
	return CreateGenesisBlock(
		genesisTimestamp,
		genesisOutputScript(),
		1574924400,
		47047,
		0x1f00ffff,
		algo.CurrentVersion|algo.GetVersionForAlgo(algo.AlgoPowQuark),
		10000*coin,
	)
}

const coin = 100000000

// mainGenesisBits and testGenesisBits are each network's own Quark pow
// limit in compact form, the nBits original_source assigns its genesis
// block before any retargeting has occurred. They are derived from the
// same chainparams.Params tables the retargeter and PoW checker read
// from, rather than a second, independently-typed literal.
var (
	mainGenesisBits = bigint.EncodeCompactTrunc(chainparams.MainNetParams().PowLimit[algo.AlgoPowQuark])
	testGenesisBits = bigint.EncodeCompactTrunc(chainparams.TestNetParams().PowLimit[algo.AlgoPowQuark])
)
