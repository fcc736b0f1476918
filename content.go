package main

// Project is one card in the showcase and one entry in the projects section.
type Project struct {
	Slug    string
	Title   string
	Summary string
	Tags    []string
	Link    string
	Image   string
}

type Award struct {
	Title  string
	Issuer string
	Year   string
	Detail string
}

type SkillGroup struct {
	Name   string
	Skills []string
}

type Position struct {
	Title        string
	Organization string
	StartDate    string
	EndDate      string
	LogoPath     string
	BulletPoints []string
}

var (
	HeroTitle    = "Zach Kordas-Potter"
	HeroTagline  = "Go developer building terminal tools, web services, and the odd machine learning experiment."
	HeroRoles    = []string{"Software Developer", "Gopher", "TUI enthusiast", "Lifelong learner"}
	ContactEmail = "zachkordaspotter@gmail.com"

	AboutMe = `I love building software that’s both useful and fun, and I’m always curious about how things work behind the scenes. 
	Most of my projects start with a simple idea and turn into a chance to learn something new, whether it’s exploring a 
	different language, experimenting with tools, or solving tricky problems.
	When I’m not coding, you’ll usually find me training Muay Thai, shooting pool with friends, 
	or chasing down a new challenge outside the screen.`

	Projects = []Project{
		{
			Slug:  "mailtui",
			Title: "Terminal Mail",
			Summary: `A terminal-based email client built in Go with fuzzyfinder capabilities
	using the Charmbracelet TUI framework and go-imap.`,
			Tags:  []string{"Go", "Bubble Tea", "IMAP"},
			Link:  "https://github.com/Zachkp",
			Image: "images/projects/mailtui.png",
		},
		{
			Slug:  "ytmusic",
			Title: "Terminal Music",
			Summary: `A terminal-based music streaming application built in Go with an elegant TUI 
	interface, leveraging yt-dlp and mpv for seamless YouTube Music playback directly from the command line.`,
			Tags:  []string{"Go", "yt-dlp", "mpv"},
			Link:  "https://github.com/Zachkp",
			Image: "images/projects/ytmusic.png",
		},
		{
			Slug:  "gamerec",
			Title: "Game Recommender",
			Summary: `A machine learning-powered web application that uses TF-IDF vectorization and cosine 
	similarity to recommend games based on content analysis, featuring interactive data visualizations and 
	real-time filtering by user reviews and ratings.`,
			Tags:  []string{"Python", "scikit-learn", "Flask"},
			Link:  "https://github.com/Zachkp",
			Image: "images/projects/gamerec.png",
		},
		{
			Slug:  "portfolio",
			Title: "This Portfolio",
			Summary: `A modern, responsive portfolio website built with Go, Gin framework, and HTMX for 
	dynamic interactions, styled with Tailwind CSS and enhanced with Alpine.js for seamless client-side 
	interactivity without traditional JavaScript frameworks.`,
			Tags:  []string{"Go", "Gin", "HTMX", "WebSocket"},
			Link:  "https://github.com/Zachkp/zach-dev",
			Image: "images/projects/portfolio.png",
		},
	}

	Awards = []Award{
		{
			Title:  "Magna Cum Laude",
			Issuer: "Western Governors University",
			Year:   "2023",
			Detail: "Graduated with a 3.8 GPA while working full time.",
		},
		{
			Title:  "Project+ Certification",
			Issuer: "CompTIA",
			Year:   "2022",
			Detail: "Certified in agile project management methodology.",
		},
		{
			Title:  "Merchandising Excellence",
			Issuer: "Target",
			Year:   "2024",
			Detail: "Recognised for executing over 300 merchandising transitions on tight timelines.",
		},
	}

	Skills = []SkillGroup{
		{Name: "Languages", Skills: []string{"Go", "Python", "JavaScript", "SQL"}},
		{Name: "Web", Skills: []string{"Gin", "HTMX", "Tailwind CSS", "Alpine.js", "WebSocket"}},
		{Name: "Tools", Skills: []string{"Git", "Docker", "SQLite", "Linux"}},
	}

	Work = []Position{
		{
			Title:        "Presentation Expert",
			Organization: "Target",
			StartDate:    "Aug 2023",
			EndDate:      "Present",
			LogoPath:     "images/TargetLogo.jpg",
			BulletPoints: []string{
				"Executed over 300 merchandising transitions on tight timelines by organizing team workflows and adapting quickly to changing priorities",
				"Boosted operational efficiency by managing backroom inventory processes and streamlining communication between floor and logistics teams",
				"Enhanced pricing and signage accuracy across departments by standardizing daily checks and collaborating cross-functionally",
			},
		},
		{
			Title:        "Manager",
			Organization: "Jasons Catered Events",
			StartDate:    "Aug 2016",
			EndDate:      "Present",
			LogoPath:     "images/jasonsCateringLogo.png",
			BulletPoints: []string{
				"Improved client satisfaction by coordinating customized menus and ensuring all dietary requirements were accurately met",
				"Supported event technology by troubleshooting AV equipment and managing digital order tracking systems, reducing technical delays and improving communication",
				"Maintained supply inventory and coordinated timely delivery between venues, optimizing resource allocation and minimizing downtime.",
			},
		},
	}

	Education = []Position{
		{
			Title:        "Bachelor of Computer Science",
			Organization: "Western Governors University",
			StartDate:    "Sept 2019",
			EndDate:      "May 2023",
			LogoPath:     "images/WGU-logo.png",
			BulletPoints: []string{
				"Graduated Magna Cum Laude with 3.8 GPA",
				"Relevant coursework: Data Structures, Algorithms, Web Development",
				"Senior project: Machine Learning recommendation system",
			},
		},
		{
			Title:        "Project Management",
			Organization: "Comptia",
			StartDate:    "July 2022",
			EndDate:      "Present",
			LogoPath:     "images/comptiaCert.png",
			BulletPoints: []string{
				"Certified in agile project management methodology",
				"Verification code: SRRRPGBSWBRQCCDJ",
			},
		},
	}
)

// projectSlugs lists the showcase cards in registration order.
func projectSlugs() []string {
	slugs := make([]string, len(Projects))
	for i, p := range Projects {
		slugs[i] = p.Slug
	}
	return slugs
}
