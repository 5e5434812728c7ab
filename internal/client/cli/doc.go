// Package cli implements the TaskFlow terminal client.
//
// The client runs either one command given on the command line
// (taskflow-cli add "Buy milk") or, with no command, an interactive loop.
//
// Commands
//
//	register [email]     create an account and log in
//	login [email]        log in and save the token
//	logout               forget the saved token
//	whoami               show the logged-in account
//	list                 list your tasks, newest first
//	add [title]          create a task
//	update <id>          change title, description or status
//	done <id>            mark a task completed
//	delete <id>          delete a task
//
// Passwords are always read from the terminal without echo.
package cli
