package models

// Hero is the top banner of the home page.
type Hero struct {
	Title           string `json:"title"`
	Subtitle        string `json:"subtitle"`
	CTAText         string `json:"ctaText"`
	CTALink         string `json:"ctaLink"`
	BackgroundImage Media  `json:"backgroundImage,omitempty"`
}

type CallToAction struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CTAText     string `json:"ctaText"`
	CTALink     string `json:"ctaLink"`
}

// HomePage is a singleton.
type HomePage struct {
	Hero Hero         `json:"hero"`
	CTA  CallToAction `json:"cta"`
}

type Heading struct {
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
}

type Statement struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

type Milestone struct {
	Year        Text   `json:"year"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location,omitempty"`
	Icon        string `json:"icon,omitempty"`
}

// AboutPage is a singleton.
type AboutPage struct {
	Hero     Heading     `json:"hero"`
	Mission  Statement   `json:"mission"`
	Vision   Statement   `json:"vision"`
	Values   []Statement `json:"values"`
	Timeline []Milestone `json:"timeline"`
}

type SEODefaults struct {
	MetaTitle       string `json:"metaTitle,omitempty"`
	MetaDescription string `json:"metaDescription,omitempty"`
	MetaImage       Media  `json:"metaImage,omitempty"`
}

// GlobalSettings is a singleton.
type GlobalSettings struct {
	SiteName    string      `json:"siteName"`
	Logo        Media       `json:"logo,omitempty"`
	Favicon     Media       `json:"favicon,omitempty"`
	SocialLinks SocialLinks `json:"socialLinks"`
	SEODefaults SEODefaults `json:"seoDefaults"`
}

func DefaultHomePage() HomePage {
	return HomePage{
		Hero: Hero{
			Title:    "Building Digital Excellence",
			Subtitle: "We craft premium software solutions that transform businesses and delight users.",
			CTAText:  "Start Your Project",
			CTALink:  "/contact",
		},
		CTA: CallToAction{
			Title:       "Ready to Start Your Project?",
			Description: "Let's work together to bring your vision to life.",
			CTAText:     "Get Started",
			CTALink:     "/contact",
		},
	}
}

func DefaultAboutPage() AboutPage {
	return AboutPage{
		Hero: Heading{
			Title:    "About ATECH",
			Subtitle: "We are a team of passionate developers, designers, and innovators dedicated to crafting exceptional digital experiences that transform businesses and delight users.",
		},
		Mission: Statement{
			Title:       "Our Mission",
			Description: "To empower businesses with cutting-edge technology solutions that drive growth and innovation.",
		},
		Vision: Statement{
			Title:       "Our Vision",
			Description: "To be the leading software development agency recognized for excellence, innovation, and client success.",
		},
		Values: []Statement{
			{Title: "Innovation", Description: "We stay ahead of the curve with the latest technologies and best practices."},
			{Title: "Quality", Description: "We deliver exceptional work that exceeds expectations."},
			{Title: "Integrity", Description: "We build trust through transparency and honest communication."},
			{Title: "Collaboration", Description: "We work closely with our clients to achieve their goals."},
		},
		Timeline: []Milestone{
			{Year: "2014", Title: "Company Founded", Description: "ATECH was established with a vision to transform businesses through innovative technology solutions.", Location: "San Francisco, CA", Icon: "rocket"},
			{Year: "2016", Title: "First Major Client", Description: "Secured our first enterprise client and delivered a successful digital transformation project.", Location: "New York, NY", Icon: "award"},
			{Year: "2018", Title: "Team Expansion", Description: "Grew from 5 to 25 team members, adding expertise in mobile development and cloud services.", Location: "Remote", Icon: "users"},
			{Year: "2020", Title: "Global Recognition", Description: "Won Best Tech Agency award and reached 100+ successful projects milestone.", Location: "Global", Icon: "award"},
			{Year: "2022", Title: "Innovation Lab Launch", Description: "Opened our innovation lab to research emerging technologies and develop cutting-edge solutions.", Location: "Austin, TX", Icon: "code"},
			{Year: "2024", Title: "500+ Projects Delivered", Description: "Reached a major milestone of 500+ successful projects, serving 200+ clients worldwide.", Location: "Worldwide", Icon: "rocket"},
		},
	}
}

func DefaultGlobalSettings() GlobalSettings {
	return GlobalSettings{SiteName: "ATECH"}
}
