// Package parser is the Parser Adapter (spec.md C2): it turns source text
// into an AST for one file, or reports a syntax error. Grounded on the
// teacher's internal/parser/parser_language_setup.go, which sets up one
// *tree_sitter.Parser per file extension; this engine targets a single
// language (the Rust-shaped language of _examples/original_source), so it
// keeps exactly the one grammar the teacher's own setupRust wires.
package parser

import (
	"sync"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"

	"github.com/wyldefox/rustlens/internal/rerrors"
)

// ParsedFile bundles a parsed tree with the exact bytes it was parsed
// from; visitors need both to resolve node text via StartByte/EndByte
// slicing, the idiom the teacher's extractors use throughout.
type ParsedFile struct {
	File   string
	Source []byte
	Tree   *tree_sitter.Tree
}

// Root returns the tree's root node for convenience.
func (p *ParsedFile) Root() tree_sitter.Node {
	return *p.Tree.RootNode()
}

// Text returns the source slice spanning a node.
func (p *ParsedFile) Text(n *tree_sitter.Node) string {
	return string(p.Source[n.StartByte():n.EndByte()])
}

// Adapter owns one tree-sitter Parser for the target language. A single
// *tree_sitter.Parser is not safe for concurrent Parse calls (it carries
// mutable incremental-parse state), so the Index Builder gives each
// goroutine its own Adapter rather than sharing one — see the pool in
// internal/indexbuild.
type Adapter struct {
	parser   *tree_sitter.Parser
	language *tree_sitter.Language
}

var languageOnce sync.Once
var sharedLanguage *tree_sitter.Language

func rustLanguage() *tree_sitter.Language {
	languageOnce.Do(func() {
		sharedLanguage = tree_sitter.NewLanguage(tree_sitter_rust.Language())
	})
	return sharedLanguage
}

// New builds one Adapter. The *tree_sitter.Language is immutable and
// shared across adapters; only the *tree_sitter.Parser is per-adapter.
func New() (*Adapter, error) {
	p := tree_sitter.NewParser()
	lang := rustLanguage()
	if err := p.SetLanguage(lang); err != nil {
		return nil, rerrors.NewInternalError("parser.New", err.Error())
	}
	return &Adapter{parser: p, language: lang}, nil
}

// Language exposes the shared *tree_sitter.Language, e.g. for constructing
// tree_sitter.Query values in the visitor package.
func (a *Adapter) Language() *tree_sitter.Language { return a.language }

// Parse is pure and deterministic for a given text (spec.md §4.2, P2): the
// same bytes always produce an equal tree, because tree-sitter's Rust
// grammar parse is itself deterministic and this Adapter carries no
// incremental-edit state between calls (each Parse starts a fresh tree).
func (a *Adapter) Parse(file string, source []byte) (*ParsedFile, *rerrors.SyntaxError) {
	tree := a.parser.Parse(source, nil)
	if tree == nil {
		return nil, &rerrors.SyntaxError{File: file, Message: "parser produced no tree"}
	}

	root := tree.RootNode()
	if errNode, ok := firstError(root); ok {
		pt := errNode.StartPosition()
		return nil, &rerrors.SyntaxError{
			File:    file,
			Line:    int(pt.Row) + 1,
			Column:  int(pt.Column) + 1,
			Message: syntaxErrorMessage(errNode),
		}
	}

	return &ParsedFile{File: file, Source: source, Tree: tree}, nil
}

// firstError walks the tree in source order and returns the first ERROR or
// MISSING node found, which tree-sitter's error-recovery inserts at (or
// nearest) the point where the grammar could not continue.
func firstError(n *tree_sitter.Node) (*tree_sitter.Node, bool) {
	if n.IsMissing() || n.IsError() {
		return n, true
	}
	if !n.HasError() {
		return nil, false
	}
	for i := uint(0); i < n.ChildCount(); i++ {
		child := n.Child(i)
		if child == nil {
			continue
		}
		if found, ok := firstError(child); ok {
			return found, true
		}
	}
	return nil, false
}

func syntaxErrorMessage(n *tree_sitter.Node) string {
	if n.IsMissing() {
		return "syntax error: expected " + n.Kind() + " is missing"
	}
	return "syntax error: unexpected token near " + n.Kind()
}
