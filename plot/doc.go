// Package plot runs the compiler over an equation list.
//
// [Compile] takes a snapshot of the list and passes every entry through
// the tokenizer, parser, validator, and code generator on its own. An
// entry that fails at any stage is reported in its [Equation] and left out
// of the program; the others are unaffected. The program is always
// assembled whole from the snapshot, so function names follow the
// positions of the entries in that snapshot.
//
// Lowering results are cached by source text and dialect, so recompiling
// a list after editing one entry only re-lowers that entry.
//
// A [Session] ties a list provider to a [render.Bridge]: [Session.Plot]
// compiles the current list and submits the program.
package plot
