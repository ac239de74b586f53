// Package seed builds the demo data the portal starts with. Times are laid out
// around a supplied instant so the calendar always has something for today.
package seed

import (
	"time"

	"github.com/noah-isme/scholarsync-api/internal/models"
)

// Data bundles every seed collection.
type Data struct {
	Events        []models.ScheduleEvent
	Announcements []models.Announcement
	Courses       []models.Course
	Materials     []models.CourseMaterial
	Feedback      []models.CourseFeedback
	Students      []models.StudentProfile
	Portals       []models.PortalConfig
}

// Build returns the full seed set relative to now, interpreted in now's location.
func Build(now time.Time) Data {
	return Data{
		Events:        Events(now),
		Announcements: Announcements(now),
		Courses:       Courses(now),
		Materials:     Materials(now),
		Feedback:      Feedback(now),
		Students:      Students(),
		Portals:       Portals(now),
	}
}

func at(day time.Time, hour, minute int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, hour, minute, 0, 0, day.Location())
}

func str(v string) *string {
	return &v
}

// Events returns today's and tomorrow's calendar entries.
func Events(now time.Time) []models.ScheduleEvent {
	tomorrow := now.AddDate(0, 0, 1)
	return []models.ScheduleEvent{
		{
			ID:         "1",
			Title:      "Advanced Calculus II",
			Type:       models.EventTypeClass,
			StartTime:  at(now, 9, 0),
			EndTime:    at(now, 10, 30),
			Location:   str("Room 304"),
			CourseCode: str("MAT202"),
		},
		{
			ID:         "2",
			Title:      "Physics Lab: Optics",
			Type:       models.EventTypeClass,
			StartTime:  at(now, 11, 0),
			EndTime:    at(now, 13, 0),
			Location:   str("Lab B"),
			CourseCode: str("PHY104"),
		},
		{
			ID:          "3",
			Title:       "Computer Networks CAT 1",
			Type:        models.EventTypeCAT,
			StartTime:   at(now, 14, 0),
			EndTime:     at(now, 15, 0),
			Location:    str("Exam Hall A"),
			CourseCode:  str("CSC301"),
			Description: str("Covers Chapters 1-4. Bring ID."),
		},
		{
			ID:         "4",
			Title:      "Database Systems",
			Type:       models.EventTypeClass,
			StartTime:  at(tomorrow, 10, 0),
			EndTime:    at(tomorrow, 11, 30),
			Location:   str("Room 201"),
			CourseCode: str("CSC305"),
		},
		{
			ID:         "5",
			Title:      "Final Project Submission",
			Type:       models.EventTypeDeadline,
			StartTime:  at(tomorrow, 23, 59),
			EndTime:    at(tomorrow, 23, 59),
			CourseCode: str("ENG400"),
		},
	}
}

// Announcements returns the campus feed, newest first.
func Announcements(now time.Time) []models.Announcement {
	return []models.Announcement{
		{
			ID:     "a1",
			Title:  "Change of Examination Venue for CSC301",
			Sender: "Registrar Office",
			Date:   now.Add(-2 * time.Hour),
			Content: "Dear Students,\n" +
				"Please be advised that the venue for the upcoming Computer Networks CAT 1 has been changed due to ongoing maintenance in the Main Hall.\n" +
				"The new venue is Exam Hall A, located in the West Wing.\n" +
				"The time remains unchanged at 14:00.\n" +
				"Please ensure you arrive at least 15 minutes early for biometric verification.\n" +
				"We apologize for any inconvenience caused.",
			IsRead:   false,
			Priority: models.AnnouncementPriorityHigh,
		},
		{
			ID:     "a2",
			Title:  "Library Holiday Hours",
			Sender: "University Library",
			Date:   now.Add(-24 * time.Hour),
			Content: "This is to inform all students and staff that the main library will be operating on reduced hours during the upcoming public holiday.\n" +
				"On Friday, we will be open from 10:00 AM to 4:00 PM only.\n" +
				"Normal 24-hour operations will resume on Saturday morning.\n" +
				"Please plan your study schedules accordingly.\n" +
				"Online resources remain accessible 24/7 via the portal.",
			IsRead:   true,
			Priority: models.AnnouncementPriorityLow,
		},
		{
			ID:     "a3",
			Title:  "Guest Lecture: AI in Healthcare",
			Sender: "Dept. of Computer Science",
			Date:   now.Add(-48 * time.Hour),
			Content: "We are excited to host Dr. Sarah Connor from CyberDyne Systems who will be giving a talk on the applications of AI in modern diagnostics.\n" +
				"Date: Next Wednesday.\n" +
				"Time: 4 PM.\n" +
				"Venue: Auditorium.\n" +
				"Attendance is mandatory for final year students but open to all.\n" +
				"Refreshments will be served after the Q&A session.",
			IsRead:   false,
			Priority: models.AnnouncementPriorityMedium,
		},
	}
}

// Courses returns the modules taught this term.
func Courses(now time.Time) []models.Course {
	tomorrow := now.AddDate(0, 0, 1)
	return []models.Course{
		{Code: "MAT202", Name: "Advanced Calculus II", StudentsCount: 45, NextClass: at(now, 9, 0)},
		{Code: "CSC301", Name: "Computer Networks", StudentsCount: 60, NextClass: at(now, 14, 0)},
		{Code: "PHY104", Name: "Physics I: Waves and Optics", StudentsCount: 38, NextClass: at(now, 11, 0)},
		{Code: "CSC305", Name: "Database Systems", StudentsCount: 52, NextClass: at(tomorrow, 10, 0)},
		{Code: "ENG400", Name: "Engineering Capstone Project", StudentsCount: 24, NextClass: at(tomorrow, 14, 0)},
	}
}

// Materials returns the starting course library.
func Materials(now time.Time) []models.CourseMaterial {
	return []models.CourseMaterial{
		{ID: "m1", Title: "Week 5 Lecture Notes: Integration Techniques", Type: models.MaterialTypePDF, CourseCode: "MAT202", UploadDate: now.AddDate(0, 0, -3), Size: "2.4 MB"},
		{ID: "m2", Title: "Solved Examples: Series Convergence", Type: models.MaterialTypeDoc, CourseCode: "MAT202", UploadDate: now.AddDate(0, 0, -1), Size: "850 KB"},
		{ID: "m3", Title: "OSI Model Overview", Type: models.MaterialTypeSlide, CourseCode: "CSC301", UploadDate: now.AddDate(0, 0, -7), Size: "5.1 MB"},
		{ID: "m4", Title: "Subnetting Walkthrough", Type: models.MaterialTypeVideo, CourseCode: "CSC301", UploadDate: now.AddDate(0, 0, -2), Size: "120 MB"},
		{ID: "m5", Title: "Lab Manual: Optics", Type: models.MaterialTypePDF, CourseCode: "PHY104", UploadDate: now.AddDate(0, 0, -10), Size: "1.8 MB"},
		{ID: "m6", Title: "ER Modelling Slides", Type: models.MaterialTypeSlide, CourseCode: "CSC305", UploadDate: now.AddDate(0, 0, -4), Size: "3.2 MB"},
	}
}

// Feedback returns feedback already left on courses.
func Feedback(now time.Time) []models.CourseFeedback {
	earlier := now.AddDate(0, 0, -2)
	return []models.CourseFeedback{
		{CourseCode: "MAT202", Message: "Calculus slides are great but need more solved examples.", SubmittedAt: earlier},
		{CourseCode: "MAT202", Message: "The last lecture was a bit too fast.", SubmittedAt: earlier},
		{CourseCode: "CSC301", Message: "The project guidelines are clear.", SubmittedAt: earlier},
		{CourseCode: "CSC301", Message: "Can we have more lab time for subnetting?", SubmittedAt: earlier},
	}
}

// Students returns the faculty roster.
func Students() []models.StudentProfile {
	return []models.StudentProfile{
		{
			ID: "s1", Name: "Amina Wanjiru", Email: "amina.wanjiru@students.scholarsync.edu",
			Attendance: 96, AverageGrade: 88, RiskLevel: models.RiskLevelLow,
			Grades: []models.GradePoint{{Month: "Sep", Score: 82}, {Month: "Oct", Score: 85}, {Month: "Nov", Score: 87}, {Month: "Dec", Score: 88}},
		},
		{
			ID: "s2", Name: "Brian Otieno", Email: "brian.otieno@students.scholarsync.edu",
			Attendance: 71, AverageGrade: 54, RiskLevel: models.RiskLevelHigh,
			Grades: []models.GradePoint{{Month: "Sep", Score: 68}, {Month: "Oct", Score: 61}, {Month: "Nov", Score: 57}, {Month: "Dec", Score: 54}},
		},
		{
			ID: "s3", Name: "Chloe Mensah", Email: "chloe.mensah@students.scholarsync.edu",
			Attendance: 88, AverageGrade: 73, RiskLevel: models.RiskLevelMedium,
			Grades: []models.GradePoint{{Month: "Sep", Score: 70}, {Month: "Oct", Score: 74}, {Month: "Nov", Score: 71}, {Month: "Dec", Score: 73}},
		},
		{
			ID: "s4", Name: "Daniel Kiprop", Email: "daniel.kiprop@students.scholarsync.edu",
			Attendance: 93, AverageGrade: 91, RiskLevel: models.RiskLevelLow,
			Grades: []models.GradePoint{{Month: "Sep", Score: 89}, {Month: "Oct", Score: 90}, {Month: "Nov", Score: 92}, {Month: "Dec", Score: 91}},
		},
		{
			ID: "s5", Name: "Esther Njeri", Email: "esther.njeri@students.scholarsync.edu",
			Attendance: 64, AverageGrade: 49, RiskLevel: models.RiskLevelHigh,
			Grades: []models.GradePoint{{Month: "Sep", Score: 60}, {Month: "Oct", Score: 55}, {Month: "Nov", Score: 52}, {Month: "Dec", Score: 49}},
		},
		{
			ID: "s6", Name: "Felix Adeyemi", Email: "felix.adeyemi@students.scholarsync.edu",
			Attendance: 85, AverageGrade: 67, RiskLevel: models.RiskLevelMedium,
			Grades: []models.GradePoint{{Month: "Sep", Score: 72}, {Month: "Oct", Score: 69}, {Month: "Nov", Score: 66}, {Month: "Dec", Score: 67}},
		},
	}
}

// Portals returns the learning platform integrations.
func Portals(now time.Time) []models.PortalConfig {
	synced := now
	return []models.PortalConfig{
		{ID: "canvas", Name: "Canvas LMS", IsConnected: true, LastSynced: &synced, Logo: "https://picsum.photos/id/1/50/50", Status: models.PortalStatusIdle},
		{ID: "blackboard", Name: "Blackboard", IsConnected: false, Logo: "https://picsum.photos/id/2/50/50", Status: models.PortalStatusIdle},
		{ID: "moodle", Name: "Moodle", IsConnected: false, Logo: "https://picsum.photos/id/3/50/50", Status: models.PortalStatusIdle},
	}
}

// StudentStats is the signed-in student's headline numbers.
func StudentStats() models.UserStats {
	return models.UserStats{StudyHours: 31, ClassesAttended: 18, AssignmentsPending: 3, ExamReadiness: 78}
}
