// Package hierarchy derives the account tree from the chart of accounts and
// aggregates per-account totals up that tree.
package hierarchy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ajustes-contables/rt6/internal/model"
)

// MalformedHierarchyError reports an account whose parent links form a
// cycle. The account is detached and treated as a root.
type MalformedHierarchyError struct {
	AccountID string
	Cycle     []string
}

func (e *MalformedHierarchyError) Error() string {
	return fmt.Sprintf("account %s is part of a parent cycle (%s)", e.AccountID, strings.Join(e.Cycle, " -> "))
}

// ParentStrategy resolves the parent of an account, returning "" when it
// cannot decide.
type ParentStrategy func(acc model.Account, byID, byCode map[string]model.Account) string

// ExplicitParent uses ParentID when it names a real account other than itself.
func ExplicitParent(acc model.Account, byID, _ map[string]model.Account) string {
	if acc.ParentID == "" || acc.ParentID == acc.ID {
		return ""
	}
	if _, ok := byID[acc.ParentID]; !ok {
		return ""
	}
	return acc.ParentID
}

// CodePrefixParent drops trailing code segments until it finds an account
// with exactly that code. "1.2.01.04.01" tries "1.2.01.04", then "1.2.01"...
func CodePrefixParent(acc model.Account, _, byCode map[string]model.Account) string {
	code := acc.Code
	for {
		i := strings.LastIndex(code, ".")
		if i <= 0 {
			return ""
		}
		code = code[:i]
		if p, ok := byCode[code]; ok && p.ID != acc.ID {
			return p.ID
		}
	}
}

// DefaultStrategies is the ordered parent resolution used by Build.
var DefaultStrategies = []ParentStrategy{ExplicitParent, CodePrefixParent}

// Tree is an immutable account hierarchy.
type Tree struct {
	accounts map[string]model.Account
	parent   map[string]string
	children map[string][]string
	roots    []string
	errs     []*MalformedHierarchyError
}

// Build derives the tree using DefaultStrategies.
func Build(accounts []model.Account) *Tree {
	return BuildWith(accounts, DefaultStrategies)
}

// BuildWith derives the tree, trying strategies in order for every account.
// Accounts no strategy can place become roots. Children are ordered by
// (code, id) so the result does not depend on input order.
func BuildWith(accounts []model.Account, strategies []ParentStrategy) *Tree {
	t := &Tree{
		accounts: make(map[string]model.Account, len(accounts)),
		parent:   make(map[string]string, len(accounts)),
		children: make(map[string][]string),
	}

	byCode := make(map[string]model.Account, len(accounts))
	for _, a := range accounts {
		if _, dup := t.accounts[a.ID]; dup {
			continue
		}
		t.accounts[a.ID] = a
		if a.Code == "" {
			continue
		}
		if prev, ok := byCode[a.Code]; !ok || a.ID < prev.ID {
			byCode[a.Code] = a
		}
	}

	for accID, a := range t.accounts {
		for _, strategy := range strategies {
			if p := strategy(a, t.accounts, byCode); p != "" {
				t.parent[accID] = p
				break
			}
		}
	}

	t.detachCycles()

	for accID := range t.accounts {
		p, ok := t.parent[accID]
		if !ok {
			t.roots = append(t.roots, accID)
			continue
		}
		t.children[p] = append(t.children[p], accID)
	}

	t.sortIDs(t.roots)
	for _, kids := range t.children {
		t.sortIDs(kids)
	}
	return t
}

// detachCycles walks every parent chain with a visited set. Each chain is
// bounded by the number of accounts, so the walk terminates on any input.
func (t *Tree) detachCycles() {
	ids := make([]string, 0, len(t.accounts))
	for accID := range t.accounts {
		ids = append(ids, accID)
	}
	sort.Strings(ids)

	// 0 = unvisited, 1 = on current path, 2 = done.
	state := make(map[string]int, len(ids))
	for _, start := range ids {
		if state[start] != 0 {
			continue
		}

		var path []string
		pos := make(map[string]int)
		cur := start
		for steps := 0; steps <= len(ids); steps++ {
			if state[cur] == 2 {
				break
			}
			if i, onPath := pos[cur]; onPath {
				cycle := append([]string(nil), path[i:]...)
				for _, c := range cycle {
					delete(t.parent, c)
					t.errs = append(t.errs, &MalformedHierarchyError{AccountID: c, Cycle: cycle})
				}
				break
			}
			pos[cur] = len(path)
			path = append(path, cur)
			state[cur] = 1

			next, ok := t.parent[cur]
			if !ok {
				break
			}
			cur = next
		}
		for _, p := range path {
			state[p] = 2
		}
	}

	sort.Slice(t.errs, func(i, j int) bool { return t.errs[i].AccountID < t.errs[j].AccountID })
}

func (t *Tree) sortIDs(ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		a, b := t.accounts[ids[i]], t.accounts[ids[j]]
		if a.Code != b.Code {
			return a.Code < b.Code
		}
		return a.ID < b.ID
	})
}

// Account returns the account for id.
func (t *Tree) Account(id string) (model.Account, bool) {
	a, ok := t.accounts[id]
	return a, ok
}

// Parent returns the parent of id, or "" for roots and unknown ids.
func (t *Tree) Parent(id string) string {
	return t.parent[id]
}

// Children returns the ordered children of id.
func (t *Tree) Children(id string) []string {
	return t.children[id]
}

// Roots returns the ordered root accounts.
func (t *Tree) Roots() []string {
	return t.roots
}

// IsRoot reports whether id is a known account without a parent.
func (t *Tree) IsRoot(id string) bool {
	if _, ok := t.accounts[id]; !ok {
		return false
	}
	_, hasParent := t.parent[id]
	return !hasParent
}

// Ancestors returns the chain from the immediate parent up to the root.
func (t *Tree) Ancestors(id string) []string {
	var out []string
	for p := t.parent[id]; p != ""; p = t.parent[p] {
		out = append(out, p)
	}
	return out
}

// Len returns the number of accounts in the tree.
func (t *Tree) Len() int { return len(t.accounts) }

// Errors returns one error per account detached because of a cycle.
func (t *Tree) Errors() []*MalformedHierarchyError {
	return t.errs
}

// Walk visits every node depth-first in presentation order.
func (t *Tree) Walk(fn func(id string, depth int)) {
	var visit func(id string, depth int)
	visit = func(id string, depth int) {
		fn(id, depth)
		for _, c := range t.children[id] {
			visit(c, depth+1)
		}
	}
	for _, r := range t.roots {
		visit(r, 0)
	}
}
