package config

import "time"

// Base application details
const AppName = "qat-editor"
const AppVersion = "0.1.0"
const DefaultConfigFileName = "config.toml"
const DefaultLogFileName = "qat-editor.log"

// Grammar library defaults; dlopen searches the usual library paths.
const DefaultGrammarLibrary = "libtree-sitter-qat.so"
const DefaultGrammarSymbol = "tree_sitter_qat"

// UI Layout
const StatusBarHeight = 1

// Status Bar
const MessageTimeout = 4 * time.Second

const DefaultTabWidth = 4
const SystemClipboard = true

// WatchDebounce coalesces bursts of writes to the open file.
const WatchDebounce = 200 * time.Millisecond
