// Package jsrepl provides an interactive snippet shell with persistent
// session state over a virtual file system.
//
// The root package exposes two types:
//
//   - Service: owns the durable entry store, the file system seeded with
//     default entries, and the workers resolving file operations
//   - Shell: one session: multiline input, sentinels (.exit, .help,
//     .load), evaluation and history
//
// Typical use:
//
//	srv, _ := jsrepl.New(ctx)
//	_ = srv.Start(ctx)
//	defer srv.Shutdown()
//	shell := srv.NewShell()
//	reply := shell.SubmitLine(ctx, "let x = 40 + 2")
//	reply = shell.SubmitLine(ctx, "x")   // reply.Text == "42"
//
// Snippets see pure builtins plus the console and file functions
// (readFileSync, writeFileSync, readdirSync, existsSync, ...) granted by the
// configured policy.
package jsrepl
