package mail

import (
	"fmt"
	"strings"
	"time"
)

const SubjectOTP = "Email Verification - Pawfect Home"
const SubjectWelcome = "Welcome to Pawfect Home!"

func SubjectAdoption(petName string) string {
	return fmt.Sprintf("Adoption Update for %s", petName)
}

func OTPBody(name, otp string) string {
	return fmt.Sprintf(`<div style="max-width:600px;margin:0 auto;font-family:Arial,sans-serif">
  <h1 style="text-align:center;color:#ff6b6b">Pawfect Home</h1>
  <p>Hi %s,</p>
  <p>Thank you for registering with Pawfect Home! Use the following OTP to verify your email address:</p>
  <div style="background:#f8f9fa;padding:20px;text-align:center;font-size:32px;font-weight:bold;letter-spacing:8px">%s</div>
  <p>This OTP is valid for 10 minutes.</p>
  <p>If you didn't request this, please ignore this email.</p>
  <p style="text-align:center;color:#777;font-size:12px">&copy; %d Pawfect Home. All rights reserved.</p>
</div>`, name, otp, time.Now().Year())
}

func WelcomeBody(name string) string {
	return fmt.Sprintf(`<div style="max-width:600px;margin:0 auto;font-family:Arial,sans-serif">
  <h1 style="text-align:center;color:#ff6b6b">Welcome to Pawfect Home!</h1>
  <p>Hi %s,</p>
  <p>Welcome to our pet adoption community! We're thrilled to have you join us in our mission to find loving homes for pets in need.</p>
  <ul>
    <li>Browse available pets</li>
    <li>Apply for adoption</li>
    <li>Upload pets for adoption</li>
    <li>Save your favorite pets</li>
  </ul>
  <p>Start exploring now and find your pawfect companion!</p>
</div>`, name)
}

func AdoptionBody(petName, status string) string {
	return fmt.Sprintf(`<div style="max-width:600px;margin:0 auto;font-family:Arial,sans-serif">
  <h1 style="text-align:center;color:#ff6b6b">Pawfect Home</h1>
  <div style="padding:15px;background:#d4edda;color:#155724;text-align:center;font-weight:bold">Adoption Application %s</div>
  <p>Your adoption application for <strong>%s</strong> has been %s.</p>
  <p>Please log in to your dashboard for more details.</p>
  <p>Thank you for choosing Pawfect Home!</p>
</div>`, status, petName, strings.ToLower(status))
}
