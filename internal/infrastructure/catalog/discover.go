// Package catalog builds the local tool catalog: it discovers executables on
// PATH, scrapes their documentation best-effort, derives the indexed fields
// and embeds a compact summary per tool.
package catalog

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Candidate is one discovered executable before documentation scraping.
type Candidate struct {
	Name string
	Path string
}

// priorityTools are indexed first, in this order; everything else follows
// lexicographically.
var priorityTools = []string{
	"find", "grep", "awk", "sed", "sort", "uniq", "cut", "tr", "wc", "head", "tail", "cat",
	"less", "more", "ls", "pwd", "mkdir", "rmdir", "rm", "cp", "mv", "chmod", "chown", "ln",
	"tar", "gzip", "gunzip", "zip", "unzip", "curl", "wget", "ssh", "scp", "rsync", "ps",
	"top", "htop", "kill", "killall", "df", "du", "free", "uname", "hostname", "date", "cal",
	"bc", "expr", "xargs", "tee", "diff", "comm", "join", "paste", "split", "file", "stat",
	"touch", "strings", "jq", "yq", "fd", "rg", "bat", "exa", "fzf", "ag", "ack", "ncdu",
	"tree", "git", "docker", "kubectl", "make", "cargo", "npm", "pip", "python",
}

// DiscoverBinaries enumerates regular, non-hidden files across every PATH
// directory. The first occurrence of a base name wins, as directories are
// scanned in search-path order.
func DiscoverBinaries(pathVar string) []Candidate {
	seen := make(map[string]bool)
	var out []Candidate
	for _, dir := range filepath.SplitList(pathVar) {
		entries, err := os.ReadDir(dir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			name := entry.Name()
			if strings.HasPrefix(name, ".") || seen[name] {
				continue
			}
			info, err := entry.Info()
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			seen[name] = true
			out = append(out, Candidate{Name: name, Path: filepath.Join(dir, name)})
		}
	}
	return out
}

// SortByPriority orders candidates so that commonly useful tools come first
// (in priority-list order) and the rest follow lexicographically.
func SortByPriority(candidates []Candidate) {
	rank := make(map[string]int, len(priorityTools))
	for i, name := range priorityTools {
		rank[name] = i
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		ri, iOK := rank[candidates[i].Name]
		rj, jOK := rank[candidates[j].Name]
		switch {
		case iOK && jOK:
			return ri < rj
		case iOK:
			return true
		case jOK:
			return false
		default:
			return candidates[i].Name < candidates[j].Name
		}
	})
}
