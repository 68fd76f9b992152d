package catalog

import "fmt"

// User-facing outcome messages shared by the interactive interface and the
// command line.
const (
	MsgInvalidCredentials   = "Invalid username or password"
	MsgConnectFailed        = "Failed to connect to server"
	MsgRegistrationComplete = "Registration successful! Please login."

	MsgEmptyList    = "No books found. Add your first book!"
	MsgBookAdded    = "Book added successfully!"
	MsgBookUpdated  = "Book updated successfully!"
	MsgBookDeleted  = "Book deleted successfully!"
	MsgAddFailed    = "Failed to add book"
	MsgUpdateFailed = "Failed to update book"
	MsgDeleteFailed = "Failed to delete book"
	MsgNetworkError = "Network error"
)

// ConfirmDeleteMessage is the question asked before deleting a book.
func ConfirmDeleteMessage(title string) string {
	return fmt.Sprintf("Are you sure you want to delete \"%s\"?", title)
}
