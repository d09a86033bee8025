package parse

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mermaidtools/drawbridge/pkg/diagram"
)

// GitGraph line grammar. commit options (id, tag, type) may appear in any
// order and are extracted independently.
var (
	gitHeaderRe   = regexp.MustCompile(`(?i)^gitgraph\b.*$`)
	gitCommitRe   = regexp.MustCompile(`^commit\b(.*)$`)
	gitBranchRe   = regexp.MustCompile(`^branch\s+(\S+)\s*$`)
	gitCheckoutRe = regexp.MustCompile(`^checkout\s+(\S+)\s*$`)
	gitMergeRe    = regexp.MustCompile(`^merge\s+(\S+)(.*)$`)

	gitIDOptRe   = regexp.MustCompile(`id:\s*"([^"]*)"`)
	gitTagOptRe  = regexp.MustCompile(`tag:\s*"([^"]*)"`)
	gitTypeOptRe = regexp.MustCompile(`type:\s*(\w+)`)
)

// gitState threads the current-branch cursor through a gitGraph parse.
type gitState struct {
	d       *diagram.Diagram
	current string            // current branch name
	head    map[string]string // branch name -> id of its latest commit
	serial  int               // counter for generated commit ids
}

// GitGraph parses gitGraph text: commit, branch, checkout, and merge
// directives. The "main" branch exists and is checked out from the start.
// Each commit is appended both to the flat node list and to its branch's
// commit-id list. Merging a branch that was never created records the merge
// commit but no cross-branch connection.
func GitGraph(text string) Result {
	d := diagram.New(diagram.DialectGitGraph)
	d.AddBranch("main")
	st := &gitState{d: d, current: "main", head: make(map[string]string)}
	var report Report

	for i, raw := range splitLines(text) {
		line := strings.TrimSpace(raw)
		num := i + 1
		switch {
		case line == "":
			report.add(num, "", OutcomeBlank)
		case st.matchLine(line):
			report.add(num, line, OutcomeMatched)
		default:
			report.add(num, line, OutcomeSkipped)
		}
	}

	return Result{Diagram: d, Report: report}
}

func (st *gitState) matchLine(line string) bool {
	if gitHeaderRe.MatchString(line) {
		return true
	}

	if m := gitCommitRe.FindStringSubmatch(line); m != nil {
		st.commit(m[1], "")
		return true
	}

	if m := gitBranchRe.FindStringSubmatch(line); m != nil {
		st.d.AddBranch(m[1])
		// The new branch forks from the current head.
		if head, ok := st.head[st.current]; ok {
			st.head[m[1]] = head
		}
		st.current = m[1]
		return true
	}

	if m := gitCheckoutRe.FindStringSubmatch(line); m != nil {
		st.d.AddBranch(m[1])
		st.current = m[1]
		return true
	}

	if m := gitMergeRe.FindStringSubmatch(line); m != nil {
		st.merge(m[1], m[2])
		return true
	}

	return false
}

// commit records a commit on the current branch, connecting it to the
// branch's previous head. mergedFrom names the branch a merge commit pulls
// in, empty for ordinary commits.
func (st *gitState) commit(opts, mergedFrom string) string {
	id := gitOption(gitIDOptRe, opts)
	if id == "" {
		id = fmt.Sprintf("commit-%d", st.serial)
	}
	st.serial++

	node := diagram.Node{
		ID:         id,
		Label:      id,
		Branch:     st.current,
		Tag:        gitOption(gitTagOptRe, opts),
		CommitType: gitOption(gitTypeOptRe, opts),
	}
	st.d.AddNode(node)
	branch := st.d.AddBranch(st.current)
	branch.Commits = append(branch.Commits, id)

	if prev, ok := st.head[st.current]; ok && prev != id {
		st.d.AddRelationship(diagram.Relationship{From: prev, To: id})
	}
	// A merge commit additionally connects to the merged branch's head.
	if mergedFrom != "" {
		if src, ok := st.head[mergedFrom]; ok && src != id {
			st.d.AddRelationship(diagram.Relationship{From: src, To: id, Label: "merge"})
		}
	}
	st.head[st.current] = id
	return id
}

// merge records a merge commit on the current branch. An unknown source
// branch yields a commit with no incoming merge connection.
func (st *gitState) merge(from, opts string) {
	st.commit(opts, from)
}

// gitOption extracts a single commit option value, or empty.
func gitOption(re *regexp.Regexp, opts string) string {
	if m := re.FindStringSubmatch(opts); m != nil {
		return m[1]
	}
	return ""
}
