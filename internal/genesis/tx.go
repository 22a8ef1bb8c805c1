package genesis

import (
	"bytes"
	"encoding/binary"

	"github.com/nivschuman/difficulty-core/internal/crypto/hash"
	"github.com/nivschuman/difficulty-core/internal/wire"
)

// opPush encodes a byte string as a script push: CompactSize length
// prefix followed by the raw bytes. Real Bitcoin-family script opcodes
// (OP_PUSHDATA1/2, direct small pushes) are a wire-compatibility detail
// this module does not need to reproduce; CompactSize-prefixed pushes
// are unambiguous to encode and decode for the coinbase scripts this
// package builds.
func opPush(data []byte) []byte {
	length, _ := wire.GetCompactSizeBytes(uint64(len(data)))
	return append(length, data...)
}

// scriptNum encodes n the way CScriptNum does: minimal little-endian
// bytes with a sign bit in the top byte's high bit, zero encoding as an
// empty byte string.
func scriptNum(n int64) []byte {
	if n == 0 {
		return nil
	}

	negative := n < 0
	abs := n
	if negative {
		abs = -n
	}

	var out []byte
	for abs > 0 {
		out = append(out, byte(abs&0xff))
		abs >>= 8
	}

	if out[len(out)-1]&0x80 != 0 {
		if negative {
			out = append(out, 0x80)
		} else {
			out = append(out, 0x00)
		}
	} else if negative {
		out[len(out)-1] |= 0x80
	}

	return out
}

// TxOut is one coinbase output.
type TxOut struct {
	Value        int64
	ScriptPubKey []byte
}

// TxIn is the coinbase's single input; it spends nothing and its
// scriptSig instead carries the height marker and timestamp bytes that
// make the coinbase transaction (and hence the genesis block) unique.
type TxIn struct {
	ScriptSig []byte
	Sequence  uint32
}

// CoinbaseTx is a minimal v1 transaction with exactly one input and at
// most one output, sufficient to build a genesis block.
type CoinbaseTx struct {
	Version  int32
	Vin      TxIn
	Vout     []TxOut
	LockTime uint32
}

// AsBytes serializes the transaction canonically: version, a null
// previous-outpoint, the scriptSig, sequence, the vout list, and
// locktime. The coinbase's previous outpoint (txid=0, index=0xffffffff)
// is implicit and not itself parameterized.
func (tx *CoinbaseTx) AsBytes() []byte {
	buf := new(bytes.Buffer)

	binary.Write(buf, binary.LittleEndian, tx.Version)

	var nullOutpoint [32]byte
	buf.Write(nullOutpoint[:])
	binary.Write(buf, binary.LittleEndian, uint32(0xffffffff))

	buf.Write(opPush(tx.Vin.ScriptSig))
	binary.Write(buf, binary.LittleEndian, tx.Vin.Sequence)

	voutCount, _ := wire.GetCompactSizeBytes(uint64(len(tx.Vout)))
	buf.Write(voutCount)
	for _, out := range tx.Vout {
		binary.Write(buf, binary.LittleEndian, out.Value)
		buf.Write(opPush(out.ScriptPubKey))
	}

	binary.Write(buf, binary.LittleEndian, tx.LockTime)

	return buf.Bytes()
}

// GetHash returns the transaction id: double SHA-256 of the canonical
// serialization. CoinbaseTx implements hash.Hashable so it can feed
// directly into internal/crypto/merkle.
func (tx *CoinbaseTx) GetHash() []byte {
	return hash.HashBytesD(tx.AsBytes())
}

// buildCoinbaseTx mirrors original_source's CreateGenesisBlock: with a
// zero reward the scriptSig carries only a block-reward marker and the
// timestamp, and the transaction has no outputs; with a nonzero reward
// it additionally carries a genesis-difficulty marker and pays the
// reward to outputScript.
func buildCoinbaseTx(timestamp string, outputScript []byte, reward int64) *CoinbaseTx {
	tx := &CoinbaseTx{Version: 1, LockTime: 0}

	scriptSig := new(bytes.Buffer)
	if reward == 0 {
		scriptSig.Write(opPush(scriptNum(4867816)))
		scriptSig.Write(opPush(scriptNum(42)))
		scriptSig.Write(opPush([]byte(timestamp)))
		tx.Vin = TxIn{ScriptSig: scriptSig.Bytes(), Sequence: 0xffffffff}
		tx.Vout = nil
		return tx
	}

	scriptSig.WriteByte(0x00) // OP_0
	scriptSig.Write(opPush(scriptNum(486604799)))
	scriptSig.Write(opPush(scriptNum(4)))
	scriptSig.Write(opPush([]byte(timestamp)))
	tx.Vin = TxIn{ScriptSig: scriptSig.Bytes(), Sequence: 0xffffffff}
	tx.Vout = []TxOut{{Value: reward, ScriptPubKey: outputScript}}

	return tx
}
