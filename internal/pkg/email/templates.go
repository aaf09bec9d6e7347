package email

const bookingConfirmationTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Booking confirmed</title></head>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>Namaste {{.UserName}},</h2>
  <p>Your {{.ServiceType}} session with {{.HealerName}} is booked.</p>
  <table cellpadding="6">
    <tr><td><strong>Booking</strong></td><td>{{.BookingID}}</td></tr>
    <tr><td><strong>Date</strong></td><td>{{.Date}}</td></tr>
    <tr><td><strong>Time</strong></td><td>{{.Time}}</td></tr>
    <tr><td><strong>Price</strong></td><td>₹{{.Price}}</td></tr>
    <tr><td><strong>Status</strong></td><td>{{.Status}}</td></tr>
    {{if .Notes}}<tr><td><strong>Notes</strong></td><td>{{.Notes}}</td></tr>{{end}}
  </table>
  <p>You can follow your sessions from <a href="{{.SiteURL}}">your dashboard</a>.</p>
  <p style="color: #888; font-size: 12px;">&copy; {{.Year}} {{.SiteName}}</p>
</body>
</html>`

const welcomeTemplate = `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Welcome</title></head>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>Welcome to {{.SiteName}}, {{.UserName}}!</h2>
  {{if eq .Role "healer"}}<p>Finish your healer profile to start receiving bookings.</p>
  {{else}}<p>Find a healer, set your wellness goals and explore the shop.</p>{{end}}
  <p><a href="{{.SiteURL}}">Open {{.SiteName}}</a></p>
  <p style="color: #888; font-size: 12px;">&copy; {{.Year}} {{.SiteName}}</p>
</body>
</html>`
