package render

type Renderer interface {
	Init() error
	Deinit() error
	Size() (columns, rows int)
	Fill(row, column int, message string)
	Clear(row int)
	Flush() error
}
