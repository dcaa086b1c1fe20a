// Package policy decides which host capabilities a snippet may reach.
// Snippets always see pure builtins; console and file operations are bound
// into their scope only when the policy grants them, and in ask mode every
// call is confirmed through an AskFunc.
package policy
