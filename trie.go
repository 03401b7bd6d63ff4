package robowriter

import (
	"io"
)

type replyKind uint8

const (
	replyOK replyKind = iota + 1
	replyError
	replyAlarm
)

// replySpec describes a controller reply line by its prefix.
type replySpec struct {
	Prefix []byte
	Kind   replyKind
}

// grblReplies are the reply lines that end the wait for an acknowledgement.
var grblReplies = []replySpec{
	{Prefix: []byte("ok"), Kind: replyOK},
	{Prefix: []byte("error"), Kind: replyError},
	{Prefix: []byte("ALARM"), Kind: replyAlarm},
}

type trieNode struct {
	children map[byte]*trieNode
	spec     *replySpec // Pointer to the reply spec if this node is an end node
}

func buildTrie(specs []replySpec) *trieNode {
	root := &trieNode{children: make(map[byte]*trieNode)}

	for i := range specs {
		current := root
		for _, b := range specs[i].Prefix {
			if _, exists := current.children[b]; !exists {
				current.children[b] = &trieNode{children: make(map[byte]*trieNode)}
			}
			current = current.children[b]
		}
		current.spec = &specs[i] // Set the reply spec at the end of the prefix
	}

	return root
}

// findReply reads bytes from r until they match the prefix of a reply.
func (n *trieNode) findReply(r io.ByteReader) (*replySpec, bool, error) {
	current := n
	for {
		b, err := r.ReadByte()
		if err != nil {
			if err == io.EOF {
				return nil, false, io.ErrUnexpectedEOF // No reply found
			}
			return nil, false, err // Error reading byte
		}

		if nextNode, exists := current.children[b]; exists {
			current = nextNode
			if current.spec != nil {
				return current.spec, true, nil // Found a reply spec
			}
		} else {
			return nil, false, nil // No matching reply found
		}
	}
}
