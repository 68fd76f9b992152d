package library

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexisbeaulieu97/libris/internal/domain/catalog"
)

// bookList is the container state: the last fetched list and the cursor.
type bookList struct {
	books   []catalog.Book
	cursor  int
	pending int
}

func (l bookList) loading() bool {
	return l.pending > 0
}

// replace swaps in a freshly fetched list and keeps the cursor in range.
func (l *bookList) replace(books []catalog.Book) {
	l.books = books
	if l.cursor >= len(l.books) {
		l.cursor = len(l.books) - 1
	}
	if l.cursor < 0 {
		l.cursor = 0
	}
}

func (l *bookList) settle() {
	if l.pending > 0 {
		l.pending--
	}
}

func (l bookList) selected() (catalog.Book, bool) {
	if l.cursor < 0 || l.cursor >= len(l.books) {
		return catalog.Book{}, false
	}
	return l.books[l.cursor], true
}

func (l bookList) find(id int64) (catalog.Book, bool) {
	for _, book := range l.books {
		if book.ID == id {
			return book, true
		}
	}
	return catalog.Book{}, false
}

// moveUp moves the cursor up with wrapping.
func (l *bookList) moveUp() {
	if len(l.books) == 0 {
		return
	}
	l.cursor--
	if l.cursor < 0 {
		l.cursor = len(l.books) - 1
	}
}

// moveDown moves the cursor down with wrapping.
func (l *bookList) moveDown() {
	if len(l.books) == 0 {
		return
	}
	l.cursor++
	if l.cursor >= len(l.books) {
		l.cursor = 0
	}
}

// renderBookList renders the list, or the loading and empty states.
func (m Model) renderBookList() string {
	st := m.styles

	if len(m.list.books) == 0 {
		if m.list.loading() {
			return st.emptyState.Render(m.spinner.View() + " Loading books...")
		}
		return st.emptyState.Render(catalog.MsgEmptyList)
	}

	var b strings.Builder
	if m.list.loading() {
		b.WriteString(st.bookMeta.Render(m.spinner.View() + " Refreshing..."))
		b.WriteString("\n")
	}

	start, end := m.visibleRange()
	items := make([]string, 0, end-start+2)
	if start > 0 {
		items = append(items, st.bookMeta.Render("▲ More above"))
	}
	for i := start; i < end; i++ {
		items = append(items, m.renderBookRow(i, i == m.list.cursor))
	}
	if end < len(m.list.books) {
		items = append(items, st.bookMeta.Render("▼ More below"))
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, items...))
	return b.String()
}

// visibleRange keeps the cursor row on screen. Each read-only row takes three
// lines; the header and footer reserve the rest.
func (m Model) visibleRange() (int, int) {
	perPage := (m.height - 10) / 3
	if perPage < 3 {
		perPage = 3
	}
	total := len(m.list.books)
	start := 0
	if m.list.cursor >= perPage {
		start = m.list.cursor - perPage + 1
	}
	end := start + perPage
	if end > total {
		end = total
	}
	return start, end
}
