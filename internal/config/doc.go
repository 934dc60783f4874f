// Package config holds the scriptedit editor settings.
//
// Settings come from four layers, each overriding the one before:
//
//	defaults < settings file < SCRIPTEDIT_* environment < command line
//
// The settings file is TOML and may pull in other files with a top-level
// "@include" key:
//
//	"@include" = ["shared.toml"]
//
//	[editor]
//	tabWidth = 4
//	popupRows = 8
//	showLineNumbers = true
//
//	[language]
//	path = "~/.config/scriptedit/filterscript.toml"
//	watch = true
//
//	[ui]
//	statusLine = true
//
// Environment variables use the section and setting name in upper snake
// case (SCRIPTEDIT_EDITOR_TAB_WIDTH), and a few have short aliases such as
// SCRIPTEDIT_LANGUAGE.
package config
