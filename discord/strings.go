package discord

import (
	"strings"
	"unicode/utf8"
)

// Embed limits, in characters.
const (
	maxTitleLen       = 256
	maxDescriptionLen = 4096
	maxFieldLen       = 1024
	maxContentLen     = 2000
)

// truncateString truncates a string on a word boundary when possible,
// adding an ellipsis.
func truncateString(str string, num int) string {
	if utf8.RuneCountInString(str) <= num {
		return str
	}

	words := strings.Fields(str)
	firstWord := true
	var out string

	for i := range words {
		if utf8.RuneCountInString(out)+utf8.RuneCountInString(words[i]) >= num-1 {
			if firstWord {
				out = string([]rune(str)[0 : num-1])
			}
			break
		}
		if firstWord {
			firstWord = false
			out = words[i]
			continue
		}
		out = out + " " + words[i]
	}
	return out + "…"
}

func escapeDiscordString(s string) string {
	r := strings.NewReplacer(
		"@everyone", "@\u200Beveryone",
		"@here", "@\u200Bhere",
		"\\", "\\\\",
		"`", "\\`",
		"||", "\\||",
		"*", "\\*",
		"~~", "\\~~",
		"_", "\\_",
		"<@", "\\<@",
	)
	return r.Replace(s)
}

// codeBlock wraps s in a fenced block, dropping any fences inside it.
func codeBlock(s string) string {
	return "```\n" + strings.ReplaceAll(s, "```", "") + "\n```"
}
