package mail

// Email-client-safe HTML templates. Layout attributes (direction, alignment,
// accent border side) are ordinary template variables derived from the locale;
// the renderer itself is locale-agnostic.

const verificationRequestTemplate = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />
    <title>New Verification Request - Mankab.com</title>
  </head>
  <body bgcolor="#f7fafc" style="margin: 0; padding: 0; font-family: Arial, Helvetica, sans-serif; line-height: 1.6; color: #4a5568; background-color: #f7fafc; width: 100%;">
    <center style="width: 100%; background-color: #f7fafc; padding: 20px 0;">
      <table cellpadding="0" cellspacing="0" border="0" width="600" style="max-width: 600px; background-color: #ffffff; border-radius: 8px; margin: auto;">
        <tr>
          <td align="center" style="padding: 25px 0; background-color: #f8fafc; border-top: 4px solid #006eb8; border-radius: 8px 8px 0 0;"></td>
        </tr>
        <tr>
          <td align="left" style="padding: 40px 30px;">
            <h1 style="color: #2d3748; font-size: 24px; margin-top: 0; margin-bottom: 20px; font-weight: normal; text-align: center;">
              New Verification Request
            </h1>
            <p style="margin-bottom: 24px; font-size: 16px;">
              A user has submitted a new identity verification request.
            </p>
            <table style="width: 100%; border-collapse: collapse; text-align: left;">
              <tr>
                <td style="padding: 12px 0; border-bottom: 1px solid #f0f0f0;">
                  <strong style="color: #555555; width: 140px; display: inline-block;">User:</strong>
                  <span style="color: #333333;">{{userName}}</span>
                </td>
              </tr>
              <tr>
                <td style="padding: 12px 0; border-bottom: 1px solid #f0f0f0;">
                  <strong style="color: #555555; width: 140px; display: inline-block;">Document type:</strong>
                  <span style="color: #333333;">{{documentType}}</span>
                </td>
              </tr>
              <tr>
                <td style="padding: 12px 0; border-bottom: 1px solid #f0f0f0;">
                  <strong style="color: #555555; width: 140px; display: inline-block;">Expires:</strong>
                  <span style="color: #333333;">{{documentExpiry}}</span>
                </td>
              </tr>
            </table>
            <div style="margin: 30px 0; text-align: center;">
              <a href="{{adminUrl}}" style="display: inline-block; padding: 12px 30px; background-color: #006eb8; color: #ffffff; text-decoration: none; border-radius: 4px;">Review Request</a>
            </div>
            <p style="margin-top: 30px; font-size: 14px; color: #718096;">
              This is an automated notification from the verification system.
            </p>
          </td>
        </tr>
        <tr>
          <td align="center" style="padding: 20px; background-color: #f8fafc; font-size: 12px; color: #718096; border-radius: 0 0 8px 8px;">
            <p style="margin-bottom: 5px;">&copy; {{year}} Mankab.com. All rights reserved.</p>
            <p style="margin-top: 0;">This is an automated message from our secure notification system.</p>
          </td>
        </tr>
      </table>
    </center>
  </body>
</html>`

const verificationStatusTemplate = `<!DOCTYPE html>
<html lang="{{locale}}" dir="{{direction}}">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />
    <title>{{title}}</title>
  </head>
  <body bgcolor="#f7fafc" style="margin: 0; padding: 0; font-family: Arial, Helvetica, sans-serif; line-height: 1.6; color: #4a5568; background-color: #f7fafc; width: 100%;">
    <center style="width: 100%; background-color: #f7fafc; padding: 20px 0;">
      <table cellpadding="0" cellspacing="0" border="0" width="600" style="max-width: 600px; background-color: #ffffff; border-radius: 8px; margin: auto;" dir="{{direction}}">
        <tr>
          <td align="center" style="padding: 25px 0; background-color: #f8fafc; border-top: 4px solid #006eb8; border-radius: 8px 8px 0 0;"></td>
        </tr>
        <tr>
          <td style="padding: 40px 30px; text-align: {{textAlign}};">
            <h1 style="color: #2d3748; font-size: 24px; margin-top: 0; margin-bottom: 20px; font-weight: normal; text-align: center;">
              {{title}}
            </h1>
            <div style="padding: 15px; background-color: #f8fafc; border-{{borderSide}}: 4px solid #006eb8; border-radius: 4px; text-align: {{textAlign}};">
              {{messageContent}}
            </div>
            {{#if actionUrl}}
            <div style="margin: 30px 0; text-align: center;">
              <a href="{{actionUrl}}" style="display: inline-block; padding: 12px 30px; background-color: #006eb8; color: #ffffff; text-decoration: none; border-radius: 4px;">{{actionLabel}}</a>
            </div>
            {{/if}}
          </td>
        </tr>
        <tr>
          <td align="center" style="padding: 20px; background-color: #f8fafc; font-size: 12px; color: #718096; border-radius: 0 0 8px 8px;">
            <p style="margin-bottom: 5px;">&copy; {{year}} Mankab.com. {{copyright}}</p>
            <p style="margin-top: 0;">{{automatedMessage}}</p>
          </td>
        </tr>
      </table>
    </center>
  </body>
</html>`

const supportNotificationTemplate = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />
    <title>New Contact Form Submission - Mankab.com</title>
  </head>
  <body bgcolor="#f7fafc" style="margin: 0; padding: 0; font-family: Arial, Helvetica, sans-serif; line-height: 1.6; color: #4a5568; background-color: #f7fafc; width: 100%;">
    <center style="width: 100%; background-color: #f7fafc; padding: 20px 0;">
      <table cellpadding="0" cellspacing="0" border="0" width="600" style="max-width: 600px; background-color: #ffffff; border-radius: 8px; margin: auto;">
        <tr>
          <td align="center" style="padding: 25px 0; background-color: #f8fafc; border-top: 4px solid #006eb8; border-radius: 8px 8px 0 0;"></td>
        </tr>
        <tr>
          <td align="left" style="padding: 40px 30px;">
            <h1 style="color: #2d3748; font-size: 24px; margin-top: 0; margin-bottom: 20px; font-weight: normal; text-align: center;">
              New Contact Form Submission
            </h1>
            <p style="margin-bottom: 24px; font-size: 16px;">
              You have received a new message from the mankab.com contact form.
            </p>
            <table style="width: 100%; border-collapse: collapse; text-align: left;">
              <tr>
                <td style="padding: 12px 0; border-bottom: 1px solid #f0f0f0;">
                  <strong style="color: #555555; width: 100px; display: inline-block;">Name:</strong>
                  <span style="color: #333333;">{{firstName}} {{lastName}}</span>
                </td>
              </tr>
              <tr>
                <td style="padding: 12px 0; border-bottom: 1px solid #f0f0f0;">
                  <strong style="color: #555555; width: 100px; display: inline-block;">Email:</strong>
                  <a href="mailto:{{email}}" style="color: #006eb8; text-decoration: none;">{{email}}</a>
                </td>
              </tr>
              <tr>
                <td style="padding: 12px 0; border-bottom: 1px solid #f0f0f0;">
                  <strong style="color: #555555; width: 100px; display: inline-block;">Phone:</strong>
                  <span style="color: #333333;">{{phone}}</span>
                </td>
              </tr>
              <tr>
                <td style="padding: 12px 0; border-bottom: 1px solid #f0f0f0;">
                  <strong style="color: #555555; width: 100px; display: inline-block;">Subject:</strong>
                  <span style="color: #333333;">{{subject}}</span>
                </td>
              </tr>
            </table>
            <div style="margin-top: 25px; text-align: left; width: 100%;">
              <h2 style="color: #2d3748; font-size: 18px; margin-bottom: 15px; font-weight: normal;">Message:</h2>
              <div style="padding: 15px; background-color: #f8fafc; border-radius: 4px; text-align: left;">
                {{message}}
              </div>
            </div>
          </td>
        </tr>
        <tr>
          <td align="center" style="padding: 20px; background-color: #f8fafc; font-size: 12px; color: #718096; border-radius: 0 0 8px 8px;">
            <p style="margin-bottom: 5px;">&copy; {{year}} Mankab.com. All rights reserved.</p>
            <p style="margin-top: 0;">This is an automated message from our secure notification system.</p>
          </td>
        </tr>
      </table>
    </center>
  </body>
</html>`

const userConfirmationTemplate = `<!DOCTYPE html>
<html lang="{{locale}}" dir="{{direction}}">
  <head>
    <meta charset="utf-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />
    <title>{{subject}}</title>
  </head>
  <body bgcolor="#f7fafc" style="margin: 0; padding: 0; font-family: Arial, Helvetica, sans-serif; line-height: 1.6; color: #4a5568; background-color: #f7fafc; width: 100%;">
    <center style="width: 100%; background-color: #f7fafc; padding: 20px 0;">
      <table cellpadding="0" cellspacing="0" border="0" width="600" style="max-width: 600px; background-color: #ffffff; border-radius: 8px; margin: auto;" dir="{{direction}}">
        <tr>
          <td align="center" style="padding: 25px 0; background-color: #f8fafc; border-top: 4px solid #006eb8; border-radius: 8px 8px 0 0;"></td>
        </tr>
        <tr>
          <td style="padding: 40px 30px; text-align: {{textAlign}};">
            <p style="margin-bottom: 24px; font-size: 16px;">{{greeting}}</p>
            <p style="margin-bottom: 24px; font-size: 16px;">{{message}}</p>
            <div style="padding: 15px; background-color: #f8fafc; border-{{borderSide}}: 4px solid #006eb8; border-radius: 4px; text-align: {{textAlign}};">
              <p style="margin: 0 0 10px 0;"><strong>{{reference}}:</strong> {{formSubject}}</p>
              <p style="margin: 0;">{{formMessage}}</p>
            </div>
            <p style="margin-top: 30px;">{{closing}}<br />{{team}}</p>
          </td>
        </tr>
        <tr>
          <td align="center" style="padding: 20px; background-color: #f8fafc; font-size: 12px; color: #718096; border-radius: 0 0 8px 8px;">
            <p style="margin-bottom: 5px;">&copy; {{year}} Mankab.com. {{copyright}}</p>
            <p style="margin-top: 0;">{{automatedMessage}}</p>
          </td>
        </tr>
      </table>
    </center>
  </body>
</html>`
