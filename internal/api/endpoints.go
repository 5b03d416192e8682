package api

// Base URLs for the Google Workspace API families.
const (
	EndpointGmail    = "https://gmail.googleapis.com/gmail/v1"
	EndpointDrive    = "https://www.googleapis.com/drive/v3"
	EndpointCalendar = "https://www.googleapis.com/calendar/v3"
	EndpointDocs     = "https://docs.googleapis.com/v1"
	EndpointSheets   = "https://sheets.googleapis.com/v4"
	EndpointSlides   = "https://slides.googleapis.com/v1"
	EndpointTasks    = "https://tasks.googleapis.com/tasks/v1"
	EndpointChat     = "https://chat.googleapis.com/v1"
	EndpointContacts = "https://people.googleapis.com/v1"
	EndpointGroups   = "https://cloudidentity.googleapis.com/v1"
	EndpointAdmin    = "https://admin.googleapis.com/admin/directory/v1"
)
