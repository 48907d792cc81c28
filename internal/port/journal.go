package port

// Journal receives human-readable lines describing stock additions.
type Journal interface {
	AppendLine(line string)
}
