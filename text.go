package main

// Project is a portfolio card.
type Project struct {
	Title   string
	Summary string
	Tags    []string
	Link    string
}

// Job is a resume work experience entry.
type Job struct {
	Title     string
	Company   string
	StartDate string
	EndDate   string
	LogoPath  string
	Bullets   []string
}

// Degree is a resume education or certification entry.
type Degree struct {
	Degree      string
	Institution string
	StartDate   string
	EndDate     string
	LogoPath    string
	Bullets     []string
}

// SocialLink is an external profile shown in the footer and on the contact page.
type SocialLink struct {
	Name string
	URL  string
	Icon string
}

var (
	AboutMe = `I love building software that's both useful and fun, and I'm always curious about how things work behind the scenes.
	Most of my projects start with a simple idea and turn into a chance to learn something new, whether it's exploring a
	different language, experimenting with tools, or solving tricky problems.
	When I'm not coding, you'll usually find me training Muay Thai, shooting pool with friends,
	or chasing down a new challenge outside the screen.`

	Skills = []string{"Go", "Gin", "HTMX", "SQL", "Python", "JavaScript", "Tailwind CSS", "Linux"}

	Projects = []Project{
		{
			Title: "Terminal Mail",
			Summary: `A terminal-based email client built in Go with fuzzyfinder capabilities
	using the Charmbracelet TUI framework and go-imap.`,
			Tags: []string{"Go", "Bubble Tea", "IMAP"},
		},
		{
			Title: "Terminal Music",
			Summary: `A terminal-based music streaming application built in Go with an elegant TUI
	interface, leveraging yt-dlp and mpv for seamless YouTube Music playback directly from the command line.`,
			Tags: []string{"Go", "TUI", "mpv"},
		},
		{
			Title: "Game Recommender",
			Summary: `A machine learning-powered web application that uses TF-IDF vectorization and cosine
	similarity to recommend games based on content analysis, featuring interactive data visualizations and
	real-time filtering by user reviews and ratings.`,
			Tags: []string{"Python", "scikit-learn", "Data Viz"},
		},
		{
			Title: "This Portfolio",
			Summary: `A modern, responsive portfolio website built with Go, Gin framework, and HTMX for
	dynamic interactions, styled with Tailwind CSS, with a light and dark theme remembered between visits.`,
			Tags: []string{"Go", "Gin", "HTMX"},
		},
	}

	WorkExperience = []Job{
		{
			Title:     "Presentation Expert",
			Company:   "Target",
			StartDate: "Aug 2023",
			EndDate:   "Present",
			LogoPath:  "/static/images/TargetLogo.jpg",
			Bullets: []string{
				"Executed over 300 merchandising transitions on tight timelines by organizing team workflows and adapting quickly to changing priorities",
				"Boosted operational efficiency by managing backroom inventory processes and streamlining communication between floor and logistics teams",
				"Enhanced pricing and signage accuracy across departments by standardizing daily checks and collaborating cross-functionally",
			},
		},
		{
			Title:     "Manager",
			Company:   "Jasons Catered Events",
			StartDate: "Aug 2016",
			EndDate:   "Present",
			LogoPath:  "/static/images/jasonsCateringLogo.png",
			Bullets: []string{
				"Improved client satisfaction by coordinating customized menus and ensuring all dietary requirements were accurately met",
				"Supported event technology by troubleshooting AV equipment and managing digital order tracking systems, reducing technical delays and improving communication",
				"Maintained supply inventory and coordinated timely delivery between venues, optimizing resource allocation and minimizing downtime.",
			},
		},
	}

	Education = []Degree{
		{
			Degree:      "Bachelor of Computer Science",
			Institution: "Western Governors University",
			StartDate:   "Sept 2019",
			EndDate:     "May 2023",
			LogoPath:    "/static/images/WGU-logo.png",
			Bullets: []string{
				"Graduated Magna Cum Laude with 3.8 GPA",
				"Relevant coursework: Data Structures, Algorithms, Web Development",
				"Senior project: Machine Learning recommendation system",
			},
		},
		{
			Degree:      "Project Management",
			Institution: "Comptia",
			StartDate:   "July 2022",
			EndDate:     "Present",
			LogoPath:    "/static/images/comptiaCert.png",
			Bullets: []string{
				"Certified in agile project management methodology",
				"Verification code: SRRRPGBSWBRQCCDJ",
			},
		},
	}

	SocialLinks = []SocialLink{
		{Name: "GitHub", URL: "https://github.com/Zachkp", Icon: "github"},
		{Name: "Email", URL: "mailto:zachkordaspotter@gmail.com", Icon: "mail"},
	}
)
