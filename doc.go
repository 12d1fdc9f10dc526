// Copyright 2021-2026, The cmdargs Authors. All rights reserved.
// Use of this source code is governed by the MIT license
// which can be found in the LICENSE file.

// Package cmdargs implements the argument model, token-parsing state
// machine, and post-parse validator for a command-line argument parser.
//
// An application author declaratively describes a Command (its
// Arguments, Groups, and Subcommands); Build finalizes that description
// (injecting --help/--version, propagating globals, asserting internal
// consistency); Parse then drives a single-pass state machine over a
// raw argument vector, writing matches into a MatchStore and, on
// success, running the validator (defaults, environment fallbacks and
// overrides first, then the required/conflicts/requires/group/count
// rules).
//
// Help/usage rendering, terminal-width detection, shell-completion
// generation, and struct-tag/derive front ends are not part of this
// package; it only carries the data and control flow those
// collaborators would consume.
package cmdargs
